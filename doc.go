// Package oreg provides an opinionated, lazy service registry for Go.
//
// The repository is intentionally small:
//
//   - registry: the library package. Identifier shapes, bindings, lazy
//     at-most-once resolution, and pinning of instantiated services.
//   - cmd/regdemo: a runnable wiring demo with a testable entry point.
//   - examples/basic: a narrated end-to-end walkthrough.
//
// The goal is to decouple service construction from service use without a
// container graph: factories receive the registry itself and resolve their
// own dependencies explicitly, usually from your composition root (main).
//
// Start with the registry package docs and examples/basic for wiring style.
package oreg
