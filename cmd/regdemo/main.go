// cmd/regdemo/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sghaida/oreg/registry"
)

// This binary is a small wiring demo.
//
// It builds a registry, registers a config value plus a store -> users
// factory chain, and resolves the chain on demand, printing what runs when.
//
// Key behaviors:
// - Factories run lazily, on first resolve, and exactly once
// - Each factory resolves its own dependencies from the registry it receives
// - With -fail the store factory fails once, showing InstantiationError and
//   retry-on-next-resolve semantics

// Identifier constants keep wiring consistent across registrations.
const (
	keyConfig = registry.TextKey("config")
	keyStore  = registry.TextKey("store")
	keyUsers  = registry.TextKey("users")
)

// demoConfig is the eagerly-provided configuration value.
type demoConfig struct {
	DSN string
}

// demoStore simulates a storage handle built from config.
type demoStore struct {
	dsn string
}

// demoUsers is the top of the dependency chain.
type demoUsers struct {
	store *demoStore
}

func (u *demoUsers) Greet(name string) string {
	return "hello " + name + " (via " + u.store.dsn + ")"
}

// run executes the demo and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("regdemo", flag.ContinueOnError)
	flags.SetOutput(stderr)

	failFirst := flags.Bool("fail", false, "make the store factory fail on its first invocation")
	dsn := flags.String("dsn", "postgres://demo", "dsn stored in the config binding")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	r := registry.New()

	r.MustRegisterValue(keyConfig, &demoConfig{DSN: *dsn})

	storeBuilds := 0
	r.MustRegisterFactory(keyStore, func(reg *registry.Registry) (any, error) {
		storeBuilds++
		fmt.Fprintf(stdout, "building store (attempt %d)\n", storeBuilds)
		if *failFirst && storeBuilds == 1 {
			return nil, errors.New("simulated connection failure")
		}
		cfg, err := registry.ResolveAs[*demoConfig](reg, keyConfig)
		if err != nil {
			return nil, err
		}
		return &demoStore{dsn: cfg.DSN}, nil
	})

	r.MustRegisterFactory(keyUsers, func(reg *registry.Registry) (any, error) {
		fmt.Fprintln(stdout, "building users")
		store, err := registry.ResolveAs[*demoStore](reg, keyStore)
		if err != nil {
			return nil, err
		}
		return &demoUsers{store: store}, nil
	})

	fmt.Fprintf(stdout, "registered: %s\n", joinIdentifiers(r))

	users, err := registry.ResolveAs[*demoUsers](r, keyUsers)
	if err != nil {
		fmt.Fprintf(stderr, "first resolve failed: %v\n", err)

		// The failed binding is still unresolved; resolving again retries the
		// factory from scratch.
		users, err = registry.ResolveAs[*demoUsers](r, keyUsers)
		if err != nil {
			fmt.Fprintf(stderr, "retry failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "retry succeeded")
	}

	fmt.Fprintln(stdout, users.Greet("world"))

	// Resolving again returns cached instances; no factory output follows.
	again := registry.MustResolveAs[*demoUsers](r, keyUsers)
	fmt.Fprintf(stdout, "cached instance reused: %v\n", again == users)

	// Pinned bindings refuse replacement.
	if err := r.RegisterValue(keyStore, "impostor"); err != nil {
		fmt.Fprintf(stdout, "re-registration refused: %v\n", err)
	}

	return 0
}

// joinIdentifiers renders the sorted identifier snapshot on one line.
func joinIdentifiers(r *registry.Registry) string {
	ids := r.Identifiers()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
