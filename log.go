package drift

import "go.uber.org/zap"

// logger receives controller and stage diagnostics. Silent by default.
var logger = zap.NewNop()

// SetLogger replaces the package logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *zap.Logger {
	return logger
}

// enableDebugLogger installs a development logger unless the caller already
// set one of their own.
func enableDebugLogger() {
	if logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	logger = l.Named("drift")
}
