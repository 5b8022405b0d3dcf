package internal

import (
	"context"
	"log/slog"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/engine"
)

// Action runs one engine operation and returns the value Run prints as
// JSON. cmd/ori supplies a different Action per subcommand.
type Action func(ctx context.Context, e *engine.Engine) (any, error)

// Option is a functional option for constructing the engine.
type Option func(*application)

type application struct {
	config *Config
	logger *slog.Logger
	action Action
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger overrides the default JSON structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithAction sets the operation Run executes once the engine is
// constructed.
func WithAction(action Action) Option {
	return func(a *application) {
		a.action = action
	}
}
