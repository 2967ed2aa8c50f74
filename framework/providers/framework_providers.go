package providers

import (
	"github.com/rs/zerolog"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/inspect"
	"github.com/km-arc/go-container/framework/logging"
	"github.com/km-arc/go-container/framework/routing"
)

// Service names bound by the framework providers.
const (
	Config    = "config"
	Logger    = "logger"
	Router    = "router"
	Inspector = "inspector"
)

// Tag groups every service bound by the framework providers.
const Tag = "framework"

func share(c *container.Container, name string, def container.Definition) error {
	if err := c.SetShared(name, def); err != nil {
		return err
	}
	c.Tag(Tag, name)
	return nil
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration as "config".
// When Config is nil it is loaded from EnvFiles on first resolution.
//
// Bound services:
//   - "config"  → *config.Config
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	if p.Config != nil {
		return share(c, Config, container.Instance(p.Config))
	}
	envFiles := p.EnvFiles
	return share(c, Config, container.Factory(func(*container.Container, ...any) (any, error) {
		return config.Load(envFiles...), nil
	}))
}

// Boot rejects invalid configuration before anything is served.
func (p *ConfigServiceProvider) Boot(c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c, Config)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger.
//
// Bound services:
//   - "logger"  → zerolog.Logger
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(c *container.Container) error {
	return share(c, Logger, container.Factory(func(c *container.Container, _ ...any) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, Config)
		if err != nil {
			return nil, err
		}
		return logging.New(cfg.Log, cfg.App.Name), nil
	}))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound services:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c *container.Container) error {
	return share(c, Router, container.Factory(func(c *container.Container, _ ...any) (any, error) {
		logger, err := container.Resolve[zerolog.Logger](c, Logger)
		if err != nil {
			return nil, err
		}
		return routing.New(logging.Component(logger, "http")), nil
	}))
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider registers the registry inspector and, when
// inspect.enabled is set, mounts it on the router under inspect.prefix.
//
// Bound services:
//   - "inspector"  → *inspect.Handler
type InspectServiceProvider struct {
	container.BaseProvider
}

func (p *InspectServiceProvider) Register(c *container.Container) error {
	return share(c, Inspector, container.Factory(func(c *container.Container, _ ...any) (any, error) {
		return inspect.NewHandler(c), nil
	}))
}

func (p *InspectServiceProvider) Boot(c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c, Config)
	if err != nil {
		return err
	}
	if !cfg.Inspect.Enabled {
		return nil
	}

	router, err := container.Resolve[*routing.Router](c, Router)
	if err != nil {
		return err
	}
	handler, err := container.Resolve[*inspect.Handler](c, Inspector)
	if err != nil {
		return err
	}
	handler.Routes(router, cfg.Inspect.Prefix)
	return nil
}
