package infer

import (
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/nderr"
)

// Target is the array Replay writes into.
//
// Set must coerce v to the target's dtype and must not retain idx; the
// coordinate slice is reused between calls.
type Target interface {
	NDim() int
	Set(v ir.Value, idx ...int) error
}

// Replay writes every scalar recorded in cache into target.
// An empty cache is a no-op. Errors from Set propagate unchanged.
func Replay(cache []CacheEntry, target Target) error {
	if len(cache) == 0 {
		return nil
	}

	ndim := target.NDim()
	if ndim == 1 {
		for i, item := range cache[0].Items {
			if err := target.Set(item, i); err != nil {
				return err
			}
		}
		return nil
	}

	r := &replayer{cache: cache, target: target, ndim: ndim, coords: make([]int, ndim)}
	_, err := r.fill(0)
	return err
}

type replayer struct {
	cache  []CacheEntry
	target Target
	ndim   int
	coords []int
}

// fill replays the entry at pos and its descendants, returning the position
// of the first entry it did not consume.
func (r *replayer) fill(pos int) (int, error) {
	if pos >= len(r.cache) {
		return pos, nderr.Argument("conversion cache exhausted at entry %d", pos)
	}

	entry := r.cache[pos]
	depth := entry.Depth
	if depth >= r.ndim {
		return pos, nderr.Argument("cache entry depth %d exceeds array rank %d", depth, r.ndim)
	}

	if depth == r.ndim-1 {
		for i, item := range entry.Items {
			r.coords[depth] = i
			if err := r.target.Set(item, r.coords...); err != nil {
				return pos, err
			}
		}
		return pos + 1, nil
	}

	next := pos + 1
	for i := range entry.Items {
		r.coords[depth] = i
		var err error
		next, err = r.fill(next)
		if err != nil {
			return next, err
		}
	}
	return next, nil
}
