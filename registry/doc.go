// Package registry provides a small lazy service registry.
//
// It maps identifiers to bindings. A binding holds either an
// already-constructed value or a factory that produces the value on first
// Resolve. Factories receive the registry itself, so a factory can resolve
// its own dependencies with nested Resolve calls (config -> db -> service
// chains wire themselves on demand).
//
// Design goals:
//   - Lazy: a factory runs at most once per identifier, on first access.
//   - Safe defaults: a binding that has produced its value is pinned and
//     cannot be replaced; re-registration fails with AlreadyInstantiatedError.
//   - Recoverable failures: a factory error (or panic) leaves the binding
//     unresolved, so the next Resolve retries from scratch.
//   - Explicit API: RegisterValue vs RegisterFactory instead of guessing
//     whether a payload is callable.
//
// Identifier shapes are a closed set: TextKey (by content), Token (opaque,
// always unique), and TypeKey (a Go type, by identity). Shapes never collide
// with each other inside one registry.
//
// The registry is safe for concurrent use: the binding map is guarded and
// factory invocation is serialized per identifier, so at-most-once holds
// under concurrent Resolve. Circular dependencies are not detected; a cycle
// (including a factory resolving its own identifier) deadlocks rather than
// returning an error.
//
// Expected usage:
//
//	r := registry.New()
//	_ = r.RegisterValue(registry.Key("config"), cfg)
//	_ = r.RegisterFactory(registry.Key("db"), func(r *registry.Registry) (any, error) {
//		cfg, err := registry.ResolveAs[*Config](r, registry.Key("config"))
//		if err != nil {
//			return nil, err
//		}
//		return OpenDB(cfg.DSN)
//	})
//	db, err := registry.ResolveAs[*DB](r, registry.Key("db"))
package registry
