package container

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ── Registry types ────────────────────────────────────────────────────────────

// entry holds a registered definition and whether it is shared. gen changes
// on every Set, so a build can tell whether its entry was replaced meanwhile.
type entry struct {
	definition Definition
	shared     bool
	gen        uint64
}

// Service is one registration as reported by Services.
type Service struct {
	Name       string
	Definition Definition
	Shared     bool
}

// Option configures a Container at construction.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Container) {
		c.log = logger
	}
}

// WithTypes replaces the process-wide Types registry for this container.
func WithTypes(types *TypeRegistry) Option {
	return func(c *Container) {
		if types != nil {
			c.types = types
		}
	}
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps service names to definitions and caches shared instances.
//
// Registration order is kept: Services lists names in the order they were
// first Set, and re-setting a name keeps its position.
//
// Map access is guarded by a mutex, but definitions are built outside of it, so
// factories may call back into the container. When two goroutines resolve the
// same shared service for the first time, both build and the first cached
// instance wins.
type Container struct {
	mu sync.RWMutex

	id string

	// name → definition, in registration order
	definitions *orderedmap.OrderedMap[string, entry]

	// name → resolved shared instance
	instances map[string]any

	// tag → service names, in tagging order
	tags map[string][]string

	gen uint64

	types *TypeRegistry
	log   zerolog.Logger
}

// New creates an empty container. The first container created while no
// default is set becomes the default.
func New(opts ...Option) *Container {
	c := newContainer(opts...)
	adoptDefault(c)
	return c
}

func newContainer(opts ...Option) *Container {
	c := &Container{
		id:          uuid.NewString(),
		definitions: orderedmap.New[string, entry](),
		instances:   make(map[string]any),
		tags:        make(map[string][]string),
		types:       Types,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("container", c.id).Logger()
	return c
}

// ID returns the random identifier of the container.
func (c *Container) ID() string { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Set registers a service under name. When def is absent and name is a
// constructible type, Type(name) is used.
//
//	// Laravel: $app->bind('request', Request::class)
//	err := c.Set("request", container.TypeOf[Request](), false)
//
// It fails with MissingDefinitionError when no definition can be determined,
// and with AlreadyResolvedError when name already holds a cached shared
// instance.
func (c *Container) Set(name string, def Definition, shared bool) error {
	if def.IsZero() && c.types.Exists(name) {
		def = Type(name)
	}
	if def.IsZero() {
		return MissingDefinitionError{Name: name}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.instances[name]; ok {
		return AlreadyResolvedError{Name: name}
	}
	c.gen++
	c.definitions.Set(name, entry{definition: def, shared: shared, gen: c.gen})

	c.log.Debug().
		Str("service", name).
		Str("kind", def.Kind().String()).
		Bool("shared", shared).
		Msg("service registered")
	return nil
}

// SetShared is Set(name, def, true).
//
//	// Laravel: $app->singleton('cache', fn($app) => new RedisCache($app))
func (c *Container) SetShared(name string, def Definition) error {
	return c.Set(name, def, true)
}

// MustSet is like Set but panics on error and returns c for chaining.
//
//	c.MustSet("a", defA, false).MustSetShared("b", defB)
func (c *Container) MustSet(name string, def Definition, shared bool) *Container {
	if err := c.Set(name, def, shared); err != nil {
		panic("container: " + err.Error())
	}
	return c
}

// MustSetShared is MustSet(name, def, true).
func (c *Container) MustSetShared(name string, def Definition) *Container {
	return c.MustSet(name, def, true)
}

// Remove deletes the definition, any cached instance and the tags of name.
func (c *Container) Remove(name string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, had := c.definitions.Delete(name)
	delete(c.instances, name)
	for tag, names := range c.tags {
		names = slices.DeleteFunc(names, func(n string) bool { return n == name })
		if len(names) == 0 {
			delete(c.tags, tag)
		} else {
			c.tags[tag] = names
		}
	}

	if had {
		c.log.Debug().Str("service", name).Msg("service removed")
	}
	return c
}

// Flush removes every definition, cached instance and tag. The container keeps
// its ID.
func (c *Container) Flush() *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.definitions.Len()
	c.definitions = orderedmap.New[string, entry]()
	c.instances = make(map[string]any)
	c.tags = make(map[string][]string)

	c.log.Debug().Int("services", n).Msg("container flushed")
	return c
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag adds names to a named group. Names need not be registered yet; tagging
// a name twice is a no-op.
//
//	// Laravel: $app->tag(['cpu', 'memory'], 'reports')
//	c.Tag("reports", "cpu", "memory")
func (c *Container) Tag(tag string, names ...string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		if !slices.Contains(c.tags[tag], name) {
			c.tags[tag] = append(c.tags[tag], name)
		}
	}
	return c
}

// Tagged resolves every service of tag, in tagging order. It stops at the
// first error.
//
//	// Laravel: $app->tagged('reports')
//	reports, err := c.Tagged("reports")
func (c *Container) Tagged(tag string, params ...any) ([]any, error) {
	c.mu.RLock()
	names := slices.Clone(c.tags[tag])
	c.mu.RUnlock()

	out := make([]any, 0, len(names))
	for _, name := range names {
		instance, err := c.Get(name, params...)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	return out, nil
}

// Tags returns the sorted tags of name.
func (c *Container) Tags(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for tag, names := range c.tags {
		if slices.Contains(names, name) {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return out
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Has reports whether name is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.definitions.Get(name)
	return ok
}

// IsShared reports whether name was registered as shared.
func (c *Container) IsShared(name string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.definitions.Get(name)
	if !ok {
		return false, ServiceNotFoundError{Name: name}
	}
	return e.shared, nil
}

// Resolved reports whether a shared instance of name is cached.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[name]
	return ok
}

// Services returns a snapshot of all registrations in registration order.
func (c *Container) Services() []Service {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Service, 0, c.definitions.Len())
	for pair := c.definitions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Service{
			Name:       pair.Key,
			Definition: pair.Value.definition,
			Shared:     pair.Value.shared,
		})
	}
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the service registered under name, building it from its
// definition with params.
//
// A cached shared instance is returned as-is and params are ignored, even when
// they differ from the ones used for the first resolution.
//
//	// Laravel: $app->make('request', [...])
//	req, err := c.Get("request", r)
func (c *Container) Get(name string, params ...any) (any, error) {
	c.mu.RLock()
	instance, ok := c.instances[name]
	c.mu.RUnlock()
	if ok {
		return instance, nil
	}
	return c.resolve(name, params)
}

// resolve builds a new instance of name and caches it when shared.
func (c *Container) resolve(name string, params []any) (any, error) {
	c.mu.RLock()
	e, ok := c.definitions.Get(name)
	c.mu.RUnlock()
	if !ok {
		return nil, ServiceNotFoundError{Name: name}
	}

	instance, err := c.build(e.definition, params)
	if err != nil || isNil(instance) {
		c.log.Warn().
			Err(err).
			Str("service", name).
			Str("kind", e.definition.Kind().String()).
			Msg("service can not be resolved")
		return nil, ResolveFailedError{Name: name, Cause: err}
	}

	if aware, ok := instance.(Aware); ok {
		aware.SetContainer(c)
	}

	c.log.Debug().Str("service", name).Bool("shared", e.shared).Msg("service resolved")

	if !e.shared {
		return instance, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.instances[name]; ok {
		return cached, nil
	}
	// The entry may have been removed or replaced while building.
	if current, ok := c.definitions.Get(name); ok && current.gen == e.gen {
		c.instances[name] = instance
		c.log.Debug().Str("service", name).Msg("shared instance cached")
	}
	return instance, nil
}

// build runs the ordered dispatch: type, factory, callable, instance. A nil
// result with a nil error means no instance could be produced.
func (c *Container) build(def Definition, params []any) (any, error) {
	switch def.kind {
	case KindType:
		ctor, ok := c.types.lookup(def.typeName)
		if !ok {
			return nil, nil
		}
		return ctor(params...)
	case KindFactory:
		return def.factory(c, params...)
	case KindCallable:
		return def.callable(params...)
	case KindInstance:
		return def.instance, nil
	default:
		return nil, nil
	}
}
