// Package ir provides the closed representation of nested array input.
//
// Input arrives from Go callers, JSON documents or YAML scenario files and
// is normalised into a Value before inference. Value is a sealed interface:
// each node is resolved once into one of the scalar variants (Int, Uint,
// Float, Rational, Complex), the sequence variant Seq, or the fallback
// Opaque which records the runtime type name for error messages.
//
// The package also owns canonical JSON serialization and content digests,
// used for golden snapshots and persisted run history.
//
// ir imports no other internal package except nderr.
package ir
