package registry

import (
	"reflect"

	"github.com/google/uuid"
)

// Identifier addresses a binding in a Registry.
//
// The set of shapes is closed:
//
//   - TextKey: an interned name, equal by content.
//   - Token: an opaque handle, unequal to every other token even when the
//     labels match.
//   - TypeKey: a Go type used as a key, equal by type identity.
//
// All shapes are comparable and may be mixed freely within one registry;
// identifiers of different shapes never collide.
type Identifier interface {
	// String returns the textual representation used in error messages.
	String() string

	// sealed restricts implementations to this package.
	sealed()
}

// TextKey is a name-based identifier. Two TextKeys are equal iff their text
// is equal.
//
// Keys are typically defined as package-level constants to avoid typos:
//
//	const (
//	  KeyDB     = registry.TextKey("db")
//	  KeyLogger = registry.TextKey("logger")
//	)
type TextKey string

// Key converts a string into a TextKey.
//
// This is a small convenience for defining keys (often as constants).
func Key(name string) TextKey { return TextKey(name) }

func (TextKey) sealed() {}

// String returns the key text as-is.
func (k TextKey) String() string { return string(k) }

// Token is an opaque identifier. Every Token minted by NewToken is distinct,
// even when labels collide; the label exists only to make error messages
// readable.
//
// The zero Token is a valid (if degenerate) identifier equal to every other
// zero Token. Always obtain tokens from NewToken.
type Token struct {
	label string
	id    uuid.UUID
}

// NewToken mints a fresh opaque token carrying a debugging label.
func NewToken(label string) Token {
	return Token{label: label, id: uuid.New()}
}

func (Token) sealed() {}

// String returns the label plus a short unique suffix, e.g. "cache#1a2b3c4d".
func (t Token) String() string {
	suffix := t.id.String()
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if t.label == "" {
		return "token#" + suffix
	}
	return t.label + "#" + suffix
}

// TypeKey identifies a binding by a Go type. Equality follows type identity,
// not structure: two distinct named types with identical layouts are
// different keys.
type TypeKey struct {
	t reflect.Type
}

// TypeOf builds the TypeKey for T. Repeated calls for the same T yield equal
// keys.
func TypeOf[T any]() TypeKey {
	return TypeKey{t: reflect.TypeOf((*T)(nil)).Elem()}
}

func (TypeKey) sealed() {}

// String returns the type's name, e.g. "*pkg.Config".
func (k TypeKey) String() string {
	if k.t == nil {
		return "<zero type key>"
	}
	return k.t.String()
}
