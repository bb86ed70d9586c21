package failure

type Severity int

const (
	SeverityFatal Severity = iota
	SeverityRecoverable
	// SeverityIgnored marks failures the caller is expected to drop after
	// recording them (e.g. a lost analytics report).
	SeverityIgnored
)

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsIgnorable reports whether err is a classified error whose severity says
// it must never reach the end user.
func IsIgnorable(err error) bool {
	classified, ok := err.(ClassifiedError)
	if !ok {
		return false
	}
	return classified.Severity() == SeverityIgnored
}
