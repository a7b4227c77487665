package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// run()
// -----------------------------------------------------------------------------

// TestRun_HappyPath verifies the full chain wires lazily and exactly once.
func TestRun_HappyPath(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-dsn", "postgres://test"}, &stdout, &stderr)

	require.Zero(t, code, "stderr: %s", stderr.String())
	out := stdout.String()

	assert.Contains(t, out, "registered: config, store, users")
	assert.Contains(t, out, "building users")
	assert.Contains(t, out, "building store (attempt 1)")
	assert.Contains(t, out, "hello world (via postgres://test)")
	assert.Contains(t, out, "cached instance reused: true")
	assert.Contains(t, out, `re-registration refused: registry: binding "store" already instantiated`)

	// Exactly one store build: the cached resolve must not rebuild.
	assert.Equal(t, 1, strings.Count(out, "building store"))
	assert.Empty(t, stderr.String())
}

// TestRun_FailThenRetry verifies -fail surfaces InstantiationError on the
// first resolve and the retry succeeds with a fresh factory invocation.
func TestRun_FailThenRetry(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-fail"}, &stdout, &stderr)

	require.Zero(t, code)

	assert.Contains(t, stderr.String(), `registry: instantiating "store" failed: simulated connection failure`)
	assert.Contains(t, stdout.String(), "building store (attempt 1)")
	assert.Contains(t, stdout.String(), "building store (attempt 2)")
	assert.Contains(t, stdout.String(), "retry succeeded")
	assert.Contains(t, stdout.String(), "hello world (via postgres://demo)")
}

// TestRun_BadFlag verifies unknown flags exit with the usage code.
func TestRun_BadFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-definitely-not-a-flag"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "flag provided but not defined")
}
