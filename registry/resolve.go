package registry

import "reflect"

// ResolveAs resolves id and asserts the value to T.
//
// It returns:
//   - any failure from Resolve (NotFoundError, InstantiationError) unchanged
//   - WrongTypeError when the binding resolved but the value is not a T
//
// A nil resolved value yields the zero T with no error.
func ResolveAs[T any](r *Registry, id Identifier) (T, error) {
	var zero T
	raw, err := r.Resolve(id)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		// Only typed nils survive the assertion below, so handle the
		// untyped-nil payload explicitly.
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, WrongTypeError{ID: id, GotType: reflect.TypeOf(raw).String()}
	}
	return v, nil
}

// MustResolveAs resolves id typed as T or panics.
//
// Useful for tests or "cannot happen" wiring assumptions in composition
// roots.
func MustResolveAs[T any](r *Registry, id Identifier) T {
	v, err := ResolveAs[T](r, id)
	if err != nil {
		panic(err)
	}
	return v
}
