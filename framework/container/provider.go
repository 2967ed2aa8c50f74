package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registration of related services.
//
// Register is called when the provider is added to a ProviderRegistry (or, for
// deferred providers, when one of its services is first resolved). Boot is
// called after all providers have been registered, so it may resolve services
// registered by other providers.
//
//	type MailServiceProvider struct{ container.BaseProvider }
//
//	func (p *MailServiceProvider) Register(c *container.Container) error {
//	    return c.SetShared("mailer", container.Factory(func(c *container.Container, _ ...any) (any, error) {
//	        return mail.NewSMTP(container.MustResolve[*config.Config](c, "config"))
//	    }))
//	}
type ServiceProvider interface {
	// Register sets the provider's services in the container.
	// Do NOT resolve other services here, use Boot for that.
	Register(c *Container) error

	// Boot runs once all providers are registered.
	Boot(c *Container) error

	// Provides lists the service names a deferred provider registers.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of the
	// Provides names is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one container.
// It is not safe for concurrent use.
type ProviderRegistry struct {
	c          *Container
	loaded     []ServiceProvider
	deferred   map[string]ServiceProvider // service name → provider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered immediately, and
// booted immediately when the registry has already booted. Registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		return r.deferProvider(provider)
	}
	return r.load(provider)
}

// deferProvider sets a transient stub for each provided name. The first Get of
// a stub loads the provider, whose Register replaces the stub, then resolves
// the real definition with the same params.
func (r *ProviderRegistry) deferProvider(provider ServiceProvider) error {
	for _, name := range provider.Provides() {
		r.deferred[name] = provider
		if err := r.c.Set(name, Factory(r.deferredFactory(provider, name)), false); err != nil {
			return fmt.Errorf("container: defer %T: %w", provider, err)
		}
	}
	r.c.log.Debug().Str("provider", fmt.Sprintf("%T", provider)).Strs("provides", provider.Provides()).Msg("provider deferred")
	return nil
}

func (r *ProviderRegistry) deferredFactory(provider ServiceProvider, name string) FactoryFunc {
	return func(c *Container, params ...any) (any, error) {
		if r.isLoaded(provider) {
			return nil, fmt.Errorf("deferred provider %T did not register %q", provider, name)
		}
		if err := r.load(provider); err != nil {
			return nil, err
		}
		return c.Get(name, params...)
	}
}

// load registers provider and, when already booted, boots it.
func (r *ProviderRegistry) load(provider ServiceProvider) error {
	for name, p := range r.deferred {
		if p == provider {
			delete(r.deferred, name)
		}
	}

	if err := provider.Register(r.c); err != nil {
		return fmt.Errorf("container: register %T: %w", provider, err)
	}
	r.loaded = append(r.loaded, provider)
	r.c.log.Debug().Str("provider", fmt.Sprintf("%T", provider)).Msg("provider registered")

	if r.booted {
		return r.boot(provider)
	}
	return nil
}

func (r *ProviderRegistry) isLoaded(provider ServiceProvider) bool {
	for _, p := range r.loaded {
		if p == provider {
			return true
		}
	}
	return false
}

// Boot calls Boot on every loaded provider, in registration order. It runs
// once; later calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.loaded {
		if err := r.boot(provider); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProviderRegistry) boot(provider ServiceProvider) error {
	if err := provider.Boot(r.c); err != nil {
		return fmt.Errorf("container: boot %T: %w", provider, err)
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the loaded providers. Deferred providers appear once one of
// their services has been resolved.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.loaded }

// Deferred reports whether name is still served by a deferred provider stub.
func (r *ProviderRegistry) Deferred(name string) bool {
	_, ok := r.deferred[name]
	return ok
}
