package kterm

import "log"

// DefaultErrorLogger builds an ErrorCallback that writes through the
// standard library logger, in the same terse single-line style the
// rest of this package's CLI tooling uses. Embedders that want
// structured diagnostics should supply their own ErrorCallback
// instead; this one exists so NewTerminal is usable without any
// collaborator wiring at all.
func DefaultErrorLogger(logger *log.Logger) ErrorCallback {
	if logger == nil {
		logger = log.Default()
	}
	return func(t *Terminal, level ErrorLevel, source ErrorSource, cycleID string, message string) {
		logger.Printf("[%s] %s (%s) cycle=%s", levelString(level), message, sourceString(source), cycleID)
	}
}

func levelString(l ErrorLevel) string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func sourceString(s ErrorSource) string {
	switch s {
	case SourceParser:
		return "parser"
	case SourceGateway:
		return "gateway"
	case SourceSystem:
		return "system"
	case SourceGraphics:
		return "graphics"
	default:
		return "unknown"
	}
}
