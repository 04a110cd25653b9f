// Package codec converts between JSON text and wrapped values.
//
// Only arrays and objects may appear at the document root; a bare scalar
// is rejected during parsing. Parsing and serialization share a nesting
// bound, DefaultMaxDepth unless overridden, so any document that parses
// also dumps. Invalid values are refused before the engine is consulted.
package codec
