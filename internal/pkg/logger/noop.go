package logger

// NoopLogger discards everything. Used in tests.
type NoopLogger struct{}

func NewNoopLogger() ILogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (l *NoopLogger) Info(module string, message string, details map[string]interface{})  {}
func (l *NoopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (l *NoopLogger) Error(module string, message string, details map[string]interface{}) {}
func (l *NoopLogger) Sync() error                                                         { return nil }
