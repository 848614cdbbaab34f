package lpclass

import "errors"

type Option func(*Model) error

func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		m.logger = logger

		return nil
	}
}

// WithEngine sets the engine used by Solve.
func WithEngine(engine Engine) Option {
	return func(m *Model) error {
		if engine == nil {
			return errors.New("nil engine")
		}
		m.engine = engine

		return nil
	}
}
