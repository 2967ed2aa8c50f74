package container

import (
	"reflect"
	"sync"
)

// Constructor builds a new value of a registered type from the Get parameters,
// in order.
type Constructor func(params ...any) (any, error)

// TypeRegistry maps type names to constructors. A name present here is a
// "constructible type": Set accepts it without a definition and the Type
// definition builds through it.
type TypeRegistry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// Types is the process-wide registry used by containers created without
// WithTypes.
var Types = NewTypeRegistry()

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{ctors: make(map[string]Constructor)}
}

// Register binds a constructor to name, replacing any previous one.
func (r *TypeRegistry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

// Unregister drops name from the registry.
func (r *TypeRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ctors, name)
}

// Exists reports whether name is a constructible type.
func (r *TypeRegistry) Exists(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

func (r *TypeRegistry) lookup(name string) (Constructor, bool) {
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[name]
	return ctor, ok && ctor != nil
}

// RegisterType registers ctor under TypeName[T]() in the process-wide registry
// and returns that name.
func RegisterType[T any](ctor Constructor) string {
	name := TypeName[T]()
	Types.Register(name, ctor)
	return name
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// service name when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	return typeKey(reflect.TypeOf(v))
}

// TypeName returns the package-qualified name of T with pointers stripped.
//
//	container.TypeName[*SampleService]() == container.TypeName[SampleService]()
func TypeName[T any]() string {
	return typeKey(reflect.TypeOf((*T)(nil)).Elem())
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// isNil treats typed nils (a nil *T stored in an interface) as absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
