package internal

import "github.com/sharjeelz/famories/internal/assistant"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	completer   assistant.Completer
	transcriber assistant.Transcriber
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithCompleter overrides the completion backend (used in tests and
// offline setups).
func WithCompleter(c assistant.Completer) Option {
	return func(a *application) {
		a.completer = c
	}
}

// WithTranscriber overrides the speech-to-text backend.
func WithTranscriber(t assistant.Transcriber) Option {
	return func(a *application) {
		a.transcriber = t
	}
}
