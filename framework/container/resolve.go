package container

import (
	"fmt"
	"reflect"
)

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: raw, err := c.Get("db"); db := raw.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, name string, params ...any) (T, error) {
	var zero T
	instance, err := c.Get(name, params...)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Name:     name,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Actual:   fmt.Sprintf("%T", instance),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, name string, params ...any) T {
	typed, err := Resolve[T](c, name, params...)
	if err != nil {
		panic("container: " + err.Error())
	}
	return typed
}

// TryResolve returns the zero value and false when the service is missing,
// can not be built, or is not a T. Use it for optional dependencies.
//
//	if metrics, ok := container.TryResolve[*Metrics](c, "metrics"); ok {
//	    metrics.Inc("boot")
//	}
func TryResolve[T any](c *Container, name string, params ...any) (T, bool) {
	typed, err := Resolve[T](c, name, params...)
	return typed, err == nil
}
