package urlutil

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinBase(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		expected string
	}{
		{name: "root path", base: "https://terroirai.com", path: "/", expected: "https://terroirai.com/"},
		{name: "nested path", base: "https://terroirai.com", path: "/blog/yield", expected: "https://terroirai.com/blog/yield"},
		{name: "empty path keeps base", base: "https://terroirai.com", path: "", expected: "https://terroirai.com"},
		{name: "base trailing slash collapsed", base: "https://terroirai.com/", path: "/contact", expected: "https://terroirai.com/contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinBase(tt.base, tt.path))
		})
	}
}

func TestQueryValue(t *testing.T) {
	u, err := url.Parse("https://terroirai.com/blog?utm_source=newsletter&utm_term=")
	require.NoError(t, err)

	source := QueryValue(u, "utm_source")
	require.NotNil(t, source)
	assert.Equal(t, "newsletter", *source)

	term := QueryValue(u, "utm_term")
	require.NotNil(t, term)
	assert.Equal(t, "", *term)

	assert.Nil(t, QueryValue(u, "utm_medium"))
	assert.Nil(t, QueryValue(nil, "utm_source"))
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "/"},
		{input: "/", expected: "/"},
		{input: "blog", expected: "/blog"},
		{input: "/blog/", expected: "/blog"},
		{input: "/blog/post-1///", expected: "/blog/post-1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CleanPath(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, CleanPath(got))
		})
	}
}
