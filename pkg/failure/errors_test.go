package failure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/terroirai/terroir-web/pkg/failure"
)

type classified struct {
	severity failure.Severity
}

func (c classified) Error() string               { return "classified" }
func (c classified) Severity() failure.Severity { return c.severity }

func TestIsIgnorable(t *testing.T) {
	assert.True(t, failure.IsIgnorable(classified{severity: failure.SeverityIgnored}))
	assert.False(t, failure.IsIgnorable(classified{severity: failure.SeverityFatal}))
	assert.False(t, failure.IsIgnorable(classified{severity: failure.SeverityRecoverable}))
	assert.False(t, failure.IsIgnorable(errors.New("plain")))
	assert.False(t, failure.IsIgnorable(nil))
}
