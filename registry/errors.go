package registry

import (
	"errors"
	"strconv"
)

var (
	// ErrNilIdentifier is returned when an operation is given a nil
	// Identifier.
	ErrNilIdentifier = errors.New("registry: nil identifier")

	// ErrNilFactory is returned when RegisterFactory is given a nil factory
	// function.
	ErrNilFactory = errors.New("registry: nil factory")

	// ErrFactoryPanic marks an InstantiationError whose factory panicked
	// instead of returning an error. Check with errors.Is.
	ErrFactoryPanic = errors.New("registry: panic during factory execution")
)

// NotFoundError is returned by Resolve when no binding exists for the
// identifier. The caller must register first.
type NotFoundError struct{ ID Identifier }

// Error implements the error interface.
func (e NotFoundError) Error() string {
	// Example: registry: no binding for "config"
	return "registry: no binding for " + quoteID(e.ID)
}

// AlreadyInstantiatedError is returned when a registration targets an
// identifier whose binding has already produced its value. The existing
// binding is left untouched.
type AlreadyInstantiatedError struct{ ID Identifier }

// Error implements the error interface.
func (e AlreadyInstantiatedError) Error() string {
	// Example: registry: binding "db" already instantiated
	return "registry: binding " + quoteID(e.ID) + " already instantiated"
}

// InstantiationError is returned by Resolve when a factory fails, wrapping
// the underlying failure. The binding stays unresolved, so a later Resolve
// retries the factory.
type InstantiationError struct {
	// ID is the identifier whose factory failed.
	ID Identifier

	// Cause is the factory's error, or a wrapped ErrFactoryPanic when the
	// factory panicked.
	Cause error
}

// Error implements the error interface.
func (e InstantiationError) Error() string {
	// Example: registry: instantiating "db" failed: dial tcp: refused
	msg := "registry: instantiating " + quoteID(e.ID) + " failed"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying factory failure.
func (e InstantiationError) Unwrap() error { return e.Cause }

// WrongTypeError is returned by ResolveAs when the resolved value is not of
// the requested type.
type WrongTypeError struct {
	// ID is the identifier that was resolved.
	ID Identifier

	// GotType is reflect.TypeOf(value).String() for the resolved value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: registry: binding "db" has wrong type (*pkg.Logger)
	return "registry: binding " + quoteID(e.ID) + " has wrong type (" + e.GotType + ")"
}

// quoteID renders an identifier for error messages without fmt to keep
// failure paths inexpensive.
func quoteID(id Identifier) string {
	if id == nil {
		return `"<nil>"`
	}
	return strconv.Quote(id.String())
}
