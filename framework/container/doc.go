// Package container provides a service container: a registry mapping string
// names to service definitions, with lazy instantiation and caching of shared
// instances.
//
// # Definitions
//
// A Definition is one of four recipes, tried in this order when a service is
// built:
//
//	container.Type("app.Request")     // registered type, constructed with the Get params
//	container.Factory(fn)             // fn(c, params...): receives the container
//	container.Callable(fn)            // fn(params...)
//	container.Instance(v)             // v itself, params ignored
//
// Types are registered by name in a TypeRegistry:
//
//	name := container.RegisterType[Request](func(params ...any) (any, error) {
//	    return NewRequest(params...), nil
//	})
//
// # Registration
//
//	c := container.New()
//
//	// Transient: new instance every Get
//	// Laravel: $app->bind('request', Request::class)
//	err := c.Set("request", container.TypeOf[Request](), false)
//
//	// Shared: built once, cached
//	// Laravel: $app->singleton('db', fn($app) => new Connection)
//	err = c.SetShared("db", container.Factory(func(c *container.Container, _ ...any) (any, error) {
//	    return sql.Open("postgres", dsn)
//	}))
//
//	// Chaining, panics on error
//	c.MustSet("a", defA, false).MustSetShared("b", defB).Remove("c")
//
// A shared service that has been resolved can not be Set again until it is
// Removed.
//
// # Resolving
//
//	raw, err := c.Get("request", httpReq)
//	db, err := container.Resolve[*sql.DB](c, "db")
//
// Parameters passed to Get for a shared service that is already cached are
// ignored: the cached instance is returned unchanged.
//
// # Tagging
//
//	// Laravel: $app->tag(['cpu', 'memory'], 'reports')
//	c.Tag("reports", "cpu", "memory")
//	reports, err := c.Tagged("reports")
//
// Flush drops every definition, instance and tag.
//
// # Default container
//
// The first container created becomes the process-wide default. Default,
// SetDefault and ResetDefault manage that slot. Prefer passing a container
// explicitly; the default exists for Aware services built outside of one.
//
// # Aware services
//
// Services implementing Aware (usually by embedding BaseAware) receive the
// container that resolved them.
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&MailServiceProvider{})
//	registry.Boot()
package container
