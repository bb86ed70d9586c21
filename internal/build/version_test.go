package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/terroirai/terroir-web/internal/build"
)

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{name: "default values", version: "dev", commit: "none", want: "dev+none"},
		{name: "release with commit", version: "1.2.0", commit: "9f1c2ab", want: "1.2.0+9f1c2ab"},
		{name: "release with empty commit", version: "1.2.0", commit: "", want: "1.2.0+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := build.Version, build.Commit
			t.Cleanup(func() {
				build.Version, build.Commit = origVersion, origCommit
			})

			build.Version = tt.version
			build.Commit = tt.commit

			assert.Equal(t, tt.want, build.FullVersion())
		})
	}
}

func TestUserAgent(t *testing.T) {
	orig := build.Version
	t.Cleanup(func() { build.Version = orig })

	build.Version = "0.4.1"
	assert.Equal(t, "terroir-web/0.4.1", build.UserAgent())
}
