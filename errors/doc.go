// Package errors provides structured error types for the hakka-json library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind set maps one-to-one to the engine's failure surface:
// malformed text, depth exceeded, wrong argument kind, missing key,
// out-of-range index, 64-bit overflow, zero division, cursor exhaustion, and
// a catch-all internal kind for engine codes with no specific mapping.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMutate, errors.KindIndex).
//		Path("items", "3").
//		Detail("insert position past end").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.KeyError(errors.PhaseAccess, "name")
//	err := errors.IndexError(errors.PhaseAccess, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
