// Package engine defines the handle-based call contract for a JSON value
// engine and provides Local, an in-process implementation backed by a
// handle table.
//
// Every value lives behind an opaque Handle. Calls return a uniform Result
// code plus declared out-values; callers never observe engine state any
// other way. Container reads and writes share the stored value rather than
// copying it, so a value reached through two handles is one value.
package engine
