// Package harness runs YAML array scenarios against the ndarray engine.
//
// A scenario builds named arrays (convert, allocate or reshape), applies set
// steps, then asserts on shapes, dtypes, byte sizes, strides and elements.
// Any build or step may instead declare the error kind it expects:
//
//	name: narrowing_overflow
//	description: int8 rejects values above 127
//	arrays:
//	  - id: a
//	    convert: [1, 300]
//	    dtype: int8
//	    expect_error: {kind: RangeError, contains: "too big"}
//	  - id: b
//	    allocate: {shape: [2, 3], dtype: float32}
//	assertions:
//	  - {type: byte_size, array: b, expect: 24}
//
// Runs are deterministic: every operation is stamped by a
// testutil.DeterministicClock, so the trace and final array snapshot can be
// compared byte for byte against golden files (RunWithGolden, AssertGolden).
//
// ValidateSchema checks a scenario file against an embedded CUE schema
// before it is loaded; LoadScenario then applies semantic validation such as
// array reference resolution.
package harness
