// Package ndarray implements an in-memory, strided, typed N-dimensional
// array backed by a byte slice.
//
// Strides are byte strides. Arrays are allocated row-major (last axis
// contiguous) by default; column-major allocation is available for ranks up
// to 2. Element writes coerce the value to the array's dtype and range-check
// integer narrowing.
//
// TryConvert builds an array from nested input in three steps: infer.Infer
// derives dtype, shape and a conversion cache; New allocates the buffer;
// infer.Replay writes every scalar through Set.
package ndarray
