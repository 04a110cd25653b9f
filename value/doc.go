// Package value wraps engine handles in typed, mutable-feeling JSON values.
//
// Each wrapper owns at most one engine handle and releases it exactly once.
// Handles move between wrappers explicitly; a moved-from wrapper is empty
// and every operation on it fails. Null, Invalid, and the two Bools are
// interned per Runtime: constructors hand out the same pinned instance
// every time, and releasing a pinned instance is a no-op.
//
// The engine is the only authority on value representation. Wrappers keep
// no shadow state: every read and write is a handle round-trip, and
// container reads alias the stored value rather than copying it.
package value
