package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-container/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     int
}

func (p *eagerProvider) Register(c *container.Container) error {
	p.registerCalled = true
	return c.SetShared("eager-svc", container.Instance("eager"))
}

func (p *eagerProvider) Boot(c *container.Container) error {
	p.bootCalled++
	return nil
}

// deferredProvider is lazy: only registered when "deferred-svc" is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled int
	bootCalled     bool
}

func (p *deferredProvider) Register(c *container.Container) error {
	p.registerCalled++
	return c.SetShared("deferred-svc", container.Callable(func(params ...any) (any, error) {
		if len(params) > 0 {
			return params[0], nil
		}
		return "deferred-value", nil
	}))
}

func (p *deferredProvider) Boot(c *container.Container) error {
	p.bootCalled = true
	return nil
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// liarProvider claims a service it never registers.
type liarProvider struct {
	container.BaseProvider
}

func (p *liarProvider) Register(c *container.Container) error { return nil }
func (p *liarProvider) IsDeferred() bool                      { return true }
func (p *liarProvider) Provides() []string                    { return []string{"ghost"} }

// multiProvider registers multiple services.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(c *container.Container) error {
	c.MustSetShared("alpha", container.Instance("α")).
		MustSetShared("beta", container.Instance("β"))
	return nil
}

type failingProvider struct {
	container.BaseProvider
	registerErr error
	bootErr     error
}

func (p *failingProvider) Register(c *container.Container) error { return p.registerErr }
func (p *failingProvider) Boot(c *container.Container) error     { return p.bootErr }

func mustGet(t *testing.T, c *container.Container, name string, params ...any) any {
	t.Helper()
	v, err := c.Get(name, params...)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	return v
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)

	if p.bootCalled != 0 {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	if p.bootCalled != 1 {
		t.Errorf("Boot() calls: got %d, want 1", p.bootCalled)
	}
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	if got := mustGet(t, c, "eager-svc"); got != "eager" {
		t.Errorf("eager-svc: got %v, want 'eager'", got)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)

	_ = reg.Boot()
	_ = reg.Boot() // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
	if p.bootCalled != 1 {
		t.Errorf("Boot() calls: got %d, want 1", p.bootCalled)
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)
	_ = reg.Register(p) // second register of same instance

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	if p.registerCalled != 0 {
		t.Error("deferred provider Register() should not be called until Get()")
	}
	if !c.Has("deferred-svc") {
		t.Error("deferred service name should be registered as a stub")
	}
	if !reg.Deferred("deferred-svc") {
		t.Error("Deferred() should report the stub")
	}
}

func TestRegistry_DeferredProvider_RegisteredOnFirstGet(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	if got := mustGet(t, c, "deferred-svc"); got != "deferred-value" {
		t.Errorf("deferred-svc: got %v, want 'deferred-value'", got)
	}
	if got := mustGet(t, c, "deferred-svc"); got != "deferred-value" {
		t.Errorf("deferred-svc (cached): got %v, want 'deferred-value'", got)
	}

	if p.registerCalled != 1 {
		t.Errorf("Register() calls: got %d, want 1", p.registerCalled)
	}
	if !p.bootCalled {
		t.Error("deferred provider loaded after Boot() should be booted immediately")
	}
	if reg.Deferred("deferred-svc") {
		t.Error("Deferred() should be false once loaded")
	}
	if shared, _ := c.IsShared("deferred-svc"); !shared {
		t.Error("real definition should replace the transient stub")
	}
}

func TestRegistry_DeferredProvider_PassesParameters(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&deferredProvider{})

	if got := mustGet(t, c, "deferred-svc", "from-params"); got != "from-params" {
		t.Errorf("deferred-svc: got %v, want 'from-params'", got)
	}
}

func TestRegistry_DeferredProvider_BootedWithRegistry(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	mustGet(t, c, "deferred-svc")

	if p.bootCalled {
		t.Error("Boot() should wait for registry.Boot()")
	}
	_ = reg.Boot()
	if !p.bootCalled {
		t.Error("loaded deferred provider should boot with the registry")
	}
}

func TestRegistry_DeferredProvider_MissingRegistration(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&liarProvider{})

	_, err := c.Get("ghost")
	if !errors.Is(err, container.ErrResolveFailed) {
		t.Fatalf("Get(ghost): got %v, want ErrResolveFailed", err)
	}
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&multiProvider{})
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	for name, want := range map[string]string{"alpha": "α", "beta": "β", "eager-svc": "eager"} {
		if got := mustGet(t, c, name); got != want {
			t.Errorf("%s: got %v, want %q", name, got, want)
		}
	}
}

// ── Providers list ────────────────────────────────────────────────────────────

func TestRegistry_Providers_ReturnsLoadedOnes(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&eagerProvider{})
	_ = reg.Register(&deferredProvider{}) // deferred, not in Providers() until loaded

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1 (eager only)", len(reg.Providers()))
	}

	mustGet(t, c, "deferred-svc")

	if len(reg.Providers()) != 2 {
		t.Errorf("Providers(): got %d, want 2 after loading deferred", len(reg.Providers()))
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestRegistry_RegisterError_Wrapped(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	boom := errors.New("boom")

	err := reg.Register(&failingProvider{registerErr: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Register: got %v, want wrapped boom", err)
	}
}

func TestRegistry_BootError_Wrapped(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	boom := errors.New("boom")

	_ = reg.Register(&failingProvider{bootErr: boom})
	if err := reg.Boot(); !errors.Is(err, boom) {
		t.Errorf("Boot: got %v, want wrapped boom", err)
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	if err := p.Boot(c); err != nil {
		t.Errorf("BaseProvider.Boot() should return nil, got %v", err)
	}
	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return empty slice")
	}
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Boot() // boot before registering

	p := &eagerProvider{}
	_ = reg.Register(p) // register after boot

	if p.bootCalled != 1 {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}
