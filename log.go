package lpclass

// Logger receives progress messages from models and engines.
type Logger interface {
	Print(v ...interface{})
}

// LoggerFunc adapts a plain function to the Logger interface.
type LoggerFunc func(v ...interface{})

func (f LoggerFunc) Print(v ...interface{}) { f(v...) }

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
