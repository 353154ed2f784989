// Package infer walks nested input once to infer the dtype and shape of the
// array it describes, and replays the resulting conversion cache into an
// allocated array.
//
// # Inference
//
// Infer performs a depth-first, pre-order walk. Each sequence node appends a
// CacheEntry before its children are visited, fixes the dimension size at
// its depth the first time that depth is seen, and must match it afterwards.
// A single scalar-depth accumulator is threaded through the whole walk (not
// just siblings): the first scalar fixes the depth at which every other
// scalar must appear.
//
// Unless a dtype is forced, the dtype of every child is combined
// left-to-right with dtype.Promote and bubbled up to the parent.
//
// # Replay
//
// Replay consumes the cache in recorded order. Cache order supplies the
// sequencing; the coordinate prefix accumulated while descending supplies
// the placement. Writes go through Target.Set, which owns dtype coercion.
//
// The walk keeps all state in a per-call struct; there are no package-level
// mutable variables, so concurrent calls on different inputs are safe.
package infer
