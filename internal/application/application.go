package application

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/gotify-push/internal/client"
	"github.com/eugenenazirov/gotify-push/internal/config"
	"github.com/eugenenazirov/gotify-push/internal/resolver"
)

// App runs a single notification delivery.
type App struct {
	settings config.Settings
	logger   *zap.Logger
	loader   resolver.Loader
}

// Option configures an App.
type Option func(*App)

// WithLoader overrides the configuration loader.
func WithLoader(loader resolver.Loader) Option {
	return func(a *App) {
		a.loader = loader
	}
}

// New initializes the application from the provided settings.
func New(settings config.Settings, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		settings: settings,
		logger:   logger,
		loader:   config.NewFileLoader(config.DefaultLocations(), logger),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run resolves the notification parameters from args and sends one
// notification. stdin is read only when the message argument is "-".
func (a *App) Run(ctx context.Context, args resolver.Arguments, stdin io.Reader) error {
	if args.URL == "" && args.ConfigPath == "" && a.settings.ConfigPath != "" {
		a.logger.Debug("using config path from environment", zap.String("path", a.settings.ConfigPath))
		args.ConfigPath = a.settings.ConfigPath
	}

	req, err := resolver.New(a.loader, stdin).Resolve(args)
	if err != nil {
		return err
	}

	a.logger.Debug("resolved notification",
		zap.String("url", req.URL),
		zap.String("title", req.Title),
		zap.Int("priority", req.Priority),
		zap.Int("message_length", len(req.Message)),
	)

	c := client.New(req.URL,
		client.WithTimeout(a.settings.Timeout),
		client.WithLogger(a.logger),
	)
	msg := client.Message{
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
	}
	if err := c.Send(ctx, req.Token, msg); err != nil {
		return err
	}

	a.logger.Info("notification sent", zap.String("url", req.URL), zap.String("title", req.Title))
	return nil
}
