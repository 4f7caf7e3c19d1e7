// Package logging provides the small level-enum and seam the rest of the
// engine uses to report diagnostics. It intentionally has no dependencies:
// operators are fail-fast and self-describing through returned errors, so
// logging here is an opt-in side channel, not part of any contract.
package logging

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// Logger is the seam operators may use to report diagnostics. The engine
// never logs on its own hot paths; callers wire a Logger in when they want
// visibility into worker pool sizing decisions or parallel kernel fallback.
type Logger interface {
	Log(level int, msg string)
}

// NopLogger discards every message. It is the default used when no Logger
// is configured.
type NopLogger struct{}

// Log implements Logger by doing nothing.
func (NopLogger) Log(level int, msg string) {}
