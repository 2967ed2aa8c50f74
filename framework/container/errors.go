package container

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by the container and the typed
// Resolve helpers matches ErrContainer and exactly one of the kind sentinels
// via errors.Is. Names are quoted verbatim in messages, never escaped.
var (
	ErrContainer         = errors.New("container error")
	ErrMissingDefinition = errors.New("missing definition")
	ErrAlreadyResolved   = errors.New("already resolved")
	ErrServiceNotFound   = errors.New("service not found")
	ErrResolveFailed     = errors.New("resolve failed")
	ErrTypeMismatch      = errors.New("type mismatch")
)

var (
	_ error = MissingDefinitionError{}
	_ error = AlreadyResolvedError{}
	_ error = ServiceNotFoundError{}
	_ error = ResolveFailedError{}
	_ error = TypeMismatchError{}
)

// MissingDefinitionError is returned by Set when no usable definition was given
// and the name is not a constructible type.
type MissingDefinitionError struct {
	Name string
}

func (e MissingDefinitionError) Error() string {
	return fmt.Sprintf("Definition for service \"%s\" is missing", e.Name)
}

func (e MissingDefinitionError) Is(target error) bool {
	return target == ErrMissingDefinition || target == ErrContainer
}

// AlreadyResolvedError is returned by Set when the name holds a cached shared
// instance. Remove the service first to re-register it.
type AlreadyResolvedError struct {
	Name string
}

func (e AlreadyResolvedError) Error() string {
	return fmt.Sprintf("Shared service \"%s\" already registered and resolved", e.Name)
}

func (e AlreadyResolvedError) Is(target error) bool {
	return target == ErrAlreadyResolved || target == ErrContainer
}

// ServiceNotFoundError is returned by Get and IsShared for unregistered names.
type ServiceNotFoundError struct {
	Name string
}

func (e ServiceNotFoundError) Error() string {
	return fmt.Sprintf("Service \"%s\" is not found", e.Name)
}

func (e ServiceNotFoundError) Is(target error) bool {
	return target == ErrServiceNotFound || target == ErrContainer
}

// ResolveFailedError is returned by Get when the definition produced no
// instance. Cause holds the constructor or factory error, if there was one.
type ResolveFailedError struct {
	Name  string
	Cause error
}

func (e ResolveFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Service \"%s\" can not be resolved: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("Service \"%s\" can not be resolved", e.Name)
}

func (e ResolveFailedError) Is(target error) bool {
	return target == ErrResolveFailed || target == ErrContainer
}

func (e ResolveFailedError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError is returned by Resolve when the instance is not of the
// requested type.
type TypeMismatchError struct {
	Name     string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Service \"%s\" is %s, expected %s", e.Name, e.Actual, e.Expected)
}

func (e TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch || target == ErrContainer
}

// IsProgrammerError reports whether err is a registration mistake
// (MissingDefinition or AlreadyResolved) rather than an expected absence.
func IsProgrammerError(err error) bool {
	return errors.Is(err, ErrMissingDefinition) || errors.Is(err, ErrAlreadyResolved)
}
