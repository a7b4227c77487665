package registry_test

import (
	"errors"
	"testing"

	"github.com/sghaida/oreg/registry"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// keyGen draws short text keys; uniqueness is not forced, collisions are part
// of the state space.
func keyGen() *rapid.Generator[registry.TextKey] {
	return rapid.Custom(func(t *rapid.T) registry.TextKey {
		return registry.Key(rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "key"))
	})
}

// TestProp_ValueRoundtrip: for every key and value, RegisterValue followed by
// Resolve returns the value and Contains reports true.
func TestProp_ValueRoundtrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		r := registry.New()
		key := keyGen().Draw(rt, "id")
		val := rapid.Int().Draw(rt, "val")

		require.NoError(rt, r.RegisterValue(key, val))
		require.True(rt, r.Contains(key))

		got, err := r.Resolve(key)
		require.NoError(rt, err)
		require.Equal(rt, val, got)
	})
}

// TestProp_FactoryAtMostOnce: however many times each key is resolved, its
// factory runs at most once, and every successful Resolve returns the first
// produced value.
func TestProp_FactoryAtMostOnce(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		r := registry.New()

		numKeys := rapid.IntRange(1, 10).Draw(rt, "numKeys")
		keys := make([]registry.TextKey, numKeys)
		calls := make([]int, numKeys)
		for i := 0; i < numKeys; i++ {
			keys[i] = registry.Key(rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "key"))
			// Re-registration of a colliding unresolved key is legal; the
			// counter of a replaced factory simply never advances.
			require.NoError(rt, r.RegisterFactory(keys[i], func(*registry.Registry) (any, error) {
				calls[i]++
				return new(int), nil
			}))
		}

		numResolves := rapid.IntRange(1, 50).Draw(rt, "numResolves")
		first := make(map[registry.TextKey]any)
		for i := 0; i < numResolves; i++ {
			k := keys[rapid.IntRange(0, numKeys-1).Draw(rt, "idx")]
			got, err := r.Resolve(k)
			require.NoError(rt, err)
			if prev, seen := first[k]; seen {
				require.Same(rt, prev, got)
			} else {
				first[k] = got
			}
		}

		for i, n := range calls {
			require.LessOrEqual(rt, n, 1, "factory %d ran more than once", i)
		}
	})
}

// TestProp_FailedFactoryRetries: a factory that fails n times before
// succeeding is invoked exactly n+1 times across n+1 Resolve calls, and the
// value is pinned afterwards.
func TestProp_FailedFactoryRetries(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		r := registry.New()
		key := keyGen().Draw(rt, "id")
		failures := rapid.IntRange(0, 5).Draw(rt, "failures")

		calls := 0
		require.NoError(rt, r.RegisterFactory(key, func(*registry.Registry) (any, error) {
			calls++
			if calls <= failures {
				return nil, errors.New("transient")
			}
			return calls, nil
		}))

		for i := 0; i < failures; i++ {
			_, err := r.Resolve(key)
			var inst registry.InstantiationError
			require.True(rt, errors.As(err, &inst))
		}

		got, err := r.Resolve(key)
		require.NoError(rt, err)
		require.Equal(rt, failures+1, got)
		require.Equal(rt, failures+1, calls)

		// Pinned: no further invocations.
		again, err := r.Resolve(key)
		require.NoError(rt, err)
		require.Equal(rt, got, again)
		require.Equal(rt, failures+1, calls)
	})
}

// TestProp_ResetClearsAll: after Reset every previously registered identifier
// is gone, whatever mix of values and factories was registered.
func TestProp_ResetClearsAll(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		r := registry.New()

		numKeys := rapid.IntRange(1, 15).Draw(rt, "numKeys")
		keys := make([]registry.TextKey, 0, numKeys)
		for i := 0; i < numKeys; i++ {
			k := registry.Key(rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "key"))
			keys = append(keys, k)
			if rapid.Bool().Draw(rt, "asValue") {
				require.NoError(rt, r.RegisterValue(k, i))
			} else {
				require.NoError(rt, r.RegisterFactory(k, func(*registry.Registry) (any, error) {
					return i, nil
				}))
			}
			if rapid.Bool().Draw(rt, "resolveNow") {
				_, err := r.Resolve(k)
				require.NoError(rt, err)
			}
		}

		r.Reset()

		require.Zero(rt, r.Len())
		for _, k := range keys {
			require.False(rt, r.Contains(k))

			_, err := r.Resolve(k)
			var nf registry.NotFoundError
			require.True(rt, errors.As(err, &nf))
		}
	})
}
