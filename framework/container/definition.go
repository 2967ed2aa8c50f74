package container

// ── Definition kinds ──────────────────────────────────────────────────────────

// Kind tags the variant held by a Definition. The order of the constants is
// the order in which the build dispatch considers them.
type Kind int

const (
	KindNone     Kind = iota // absent definition
	KindType                 // type name constructed through the TypeRegistry
	KindFactory              // func(c *Container, params ...any) (any, error)
	KindCallable             // func(params ...any) (any, error)
	KindInstance             // pre-built value, returned as-is
)

// String returns the lower-case kind name used in logs and inspector output.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindFactory:
		return "factory"
	case KindCallable:
		return "callable"
	case KindInstance:
		return "instance"
	default:
		return "none"
	}
}

// FactoryFunc builds a service and receives the resolving container, so it can
// pull its own dependencies out of it.
//
//	// Laravel: $app->bind('db', fn($app, ...$params) => new Connection(...$params))
//	c.Set("db", container.Factory(func(c *container.Container, params ...any) (any, error) {
//	    return db.Open(container.MustResolve[*config.Config](c, "config").DB)
//	}), true)
type FactoryFunc func(c *Container, params ...any) (any, error)

// CallableFunc builds a service from the Get parameters only.
type CallableFunc func(params ...any) (any, error)

// ── Definition ────────────────────────────────────────────────────────────────

// Definition is the recipe the container uses to produce a service instance.
// The zero value is an absent definition.
type Definition struct {
	kind     Kind
	typeName string
	factory  FactoryFunc
	callable CallableFunc
	instance any
}

// Type defines a service by the name of a type registered in a TypeRegistry.
//
//	container.RegisterType[Mailer](func(params ...any) (any, error) { return &Mailer{}, nil })
//	c.Set("mailer", container.Type(container.TypeName[Mailer]()), false)
func Type(name string) Definition {
	if name == "" {
		return Definition{}
	}
	return Definition{kind: KindType, typeName: name}
}

// TypeOf is Type(TypeName[T]()).
func TypeOf[T any]() Definition {
	return Type(TypeName[T]())
}

// Factory defines a service built by a container-aware factory.
func Factory(fn FactoryFunc) Definition {
	if fn == nil {
		return Definition{}
	}
	return Definition{kind: KindFactory, factory: fn}
}

// Callable defines a service built by a plain function of the Get parameters.
func Callable(fn CallableFunc) Definition {
	if fn == nil {
		return Definition{}
	}
	return Definition{kind: KindCallable, callable: fn}
}

// Instance defines a service by a pre-built value. Every Get returns v.
//
//	// Laravel: $app->instance('config', $config)
//	c.Set("config", container.Instance(cfg), true)
func Instance(v any) Definition {
	if isNil(v) {
		return Definition{}
	}
	return Definition{kind: KindInstance, instance: v}
}

// Kind returns the variant held by d.
func (d Definition) Kind() Kind { return d.kind }

// IsZero reports whether d is an absent definition.
func (d Definition) IsZero() bool { return d.kind == KindNone }

// TypeName returns the type name of a KindType definition, "" otherwise.
func (d Definition) TypeName() string { return d.typeName }

// Value returns the pre-built value of a KindInstance definition, nil otherwise.
func (d Definition) Value() any { return d.instance }
