package registry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Factory produces the value for a binding. It receives the owning registry
// so it can resolve its own dependencies; nested Resolve and Register calls
// for other identifiers are safe during execution.
type Factory func(r *Registry) (any, error)

// binding is the per-identifier record.
//
// Lifecycle: a factory binding starts unresolved; the first successful
// Resolve caches the produced value, drops the factory, and flips resolved.
// A value binding is born resolved. Once resolved, value never changes.
type binding struct {
	mu       sync.Mutex  // serializes factory invocation for this identifier
	resolved atomic.Bool // once true, value is immutable and the binding is pinned
	factory  Factory
	value    any
}

// Registry stores identifier->binding mappings and resolves them on demand,
// running each factory at most once.
//
// All methods are safe for concurrent use. The registry lock is never held
// across factory execution, so factories may call back into the registry for
// other identifiers. A dependency cycle (directly or across goroutines)
// deadlocks; cycle detection is out of scope.
type Registry struct {
	mu       sync.Mutex
	bindings map[Identifier]*binding
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{bindings: make(map[Identifier]*binding)}
}

// RegisterValue binds id to an already-constructed value. The binding is
// pinned immediately: any later registration for id fails with
// AlreadyInstantiatedError.
//
// A nil value is a legal payload; Resolve will return (nil, nil) for it.
func (r *Registry) RegisterValue(id Identifier, v any) error {
	if id == nil {
		return ErrNilIdentifier
	}
	b := &binding{value: v}
	b.resolved.Store(true)
	return r.put(id, b)
}

// RegisterFactory binds id to a producer that runs on the first Resolve.
// Until that first successful Resolve, the binding may be freely replaced by
// another RegisterValue/RegisterFactory call; afterwards it is pinned.
func (r *Registry) RegisterFactory(id Identifier, f Factory) error {
	if id == nil {
		return ErrNilIdentifier
	}
	if f == nil {
		return ErrNilFactory
	}
	return r.put(id, &binding{factory: f})
}

// MustRegisterValue panics on registration error. Useful in composition
// roots where a pinning conflict is a programming bug.
func (r *Registry) MustRegisterValue(id Identifier, v any) {
	if err := r.RegisterValue(id, v); err != nil {
		panic(err)
	}
}

// MustRegisterFactory panics on registration error.
func (r *Registry) MustRegisterFactory(id Identifier, f Factory) {
	if err := r.RegisterFactory(id, f); err != nil {
		panic(err)
	}
}

// put installs b for id, refusing to replace a pinned binding.
func (r *Registry) put(id Identifier, b *binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.bindings[id]; ok && old.resolved.Load() {
		return AlreadyInstantiatedError{ID: id}
	}
	r.bindings[id] = b
	return nil
}

// Resolve returns the concrete value bound to id.
//
// A value binding is returned as-is. A factory binding is invoked exactly
// once on first access, with the registry passed as the factory's argument;
// the produced value is cached and returned on every later call.
//
// Failures:
//   - NotFoundError when no binding exists for id.
//   - InstantiationError when the factory returns an error or panics. The
//     binding stays unresolved and the next Resolve retries the factory.
func (r *Registry) Resolve(id Identifier) (any, error) {
	if id == nil {
		return nil, ErrNilIdentifier
	}

	r.mu.Lock()
	b, ok := r.bindings[id]
	r.mu.Unlock()
	if !ok {
		return nil, NotFoundError{ID: id}
	}

	// Fast path: pinned bindings need no locking.
	if b.resolved.Load() {
		return b.value, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resolved.Load() {
		// Another caller instantiated while we waited.
		return b.value, nil
	}

	v, err := invoke(r, id, b.factory)
	if err != nil {
		return nil, err
	}
	b.value = v
	b.factory = nil
	b.resolved.Store(true)
	return v, nil
}

// MustResolve returns the value bound to id or panics.
func (r *Registry) MustResolve(id Identifier) any {
	v, err := r.Resolve(id)
	if err != nil {
		panic(err)
	}
	return v
}

// invoke runs the factory, converting errors and panics into
// InstantiationError.
func invoke(r *Registry, id Identifier, f Factory) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = InstantiationError{ID: id, Cause: fmt.Errorf("%w: %v", ErrFactoryPanic, rec)}
		}
	}()

	out, ferr := f(r)
	if ferr != nil {
		return nil, InstantiationError{ID: id, Cause: ferr}
	}
	return out, nil
}

// Contains reports whether any binding exists for id, resolved or not.
// It never fails and never invokes a factory.
func (r *Registry) Contains(id Identifier) bool {
	if id == nil {
		return false
	}
	r.mu.Lock()
	_, ok := r.bindings[id]
	r.mu.Unlock()
	return ok
}

// Resolved reports whether id is bound and its value has been produced.
func (r *Registry) Resolved(id Identifier) bool {
	if id == nil {
		return false
	}
	r.mu.Lock()
	b, ok := r.bindings[id]
	r.mu.Unlock()
	return ok && b.resolved.Load()
}

// Peek returns the cached value for id without invoking a factory.
// ok is false when id is unbound or still uninstantiated.
func (r *Registry) Peek(id Identifier) (any, bool) {
	if id == nil {
		return nil, false
	}
	r.mu.Lock()
	b, ok := r.bindings[id]
	r.mu.Unlock()
	if !ok || !b.resolved.Load() {
		return nil, false
	}
	return b.value, true
}

// Reset removes every binding unconditionally, including pinned ones. After
// Reset the registry behaves as freshly constructed. No cleanup hook runs on
// discarded values.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.bindings = make(map[Identifier]*binding)
	r.mu.Unlock()
}

// Len returns the number of bindings, resolved or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	n := len(r.bindings)
	r.mu.Unlock()
	return n
}

// Identifiers returns a snapshot of all bound identifiers sorted by their
// textual representation.
func (r *Registry) Identifiers() []Identifier {
	r.mu.Lock()
	ids := make([]Identifier, 0, len(r.bindings))
	for id := range r.bindings {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
