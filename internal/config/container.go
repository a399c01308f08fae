package config

import (
	"fmt"

	"pdf-upload-form/internal/domain"
	"pdf-upload-form/internal/render"
	"pdf-upload-form/internal/service"
	"pdf-upload-form/internal/session"
	"pdf-upload-form/internal/uploadform"
	"pdf-upload-form/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config        domain.Config
	Logger        domain.Logger
	ProcessClient *service.ProcessClient
	Inspector     domain.FileInspector
	Renderer      *render.Renderer
	Sessions      *session.Manager
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWith(NewConfig())
}

// NewContainerWith wires the container around an existing configuration
func NewContainerWith(cfg domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	processClient := service.NewProcessClient(
		cfg.GetProcessEndpoint(),
		cfg.GetProcessHealthEndpoint(),
		appLogger,
	)

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Every mounted form shares the process client and the progress settings.
	opts := uploadform.OptionsFromConfig(cfg)
	sessions := session.NewManager(func() *uploadform.Form {
		return uploadform.New(processClient, appLogger, opts)
	}, cfg.GetSessionTTL(), appLogger)

	return &Container{
		Config:        cfg,
		Logger:        appLogger,
		ProcessClient: processClient,
		Inspector:     service.NewMimeInspector(),
		Renderer:      renderer,
		Sessions:      sessions,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
