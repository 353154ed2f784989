package infer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
)

// recorder is a Target that records every write.
type recorder struct {
	ndim   int
	writes []write
	failAt int
}

type write struct {
	v   ir.Value
	idx []int
}

func (r *recorder) NDim() int { return r.ndim }

func (r *recorder) Set(v ir.Value, idx ...int) error {
	if r.failAt > 0 && len(r.writes)+1 == r.failAt {
		return errors.New("boom")
	}
	r.writes = append(r.writes, write{v: v, idx: append([]int(nil), idx...)})
	return nil
}

func replayInto(t *testing.T, root ir.Value) *recorder {
	t.Helper()
	res, err := Infer(root, dtype.None)
	require.NoError(t, err)
	rec := &recorder{ndim: res.NDim()}
	require.NoError(t, Replay(res.Cache, rec))
	return rec
}

func TestReplayOneDimensional(t *testing.T) {
	rec := replayInto(t, ints(10, 20, 30))
	require.Len(t, rec.writes, 3)
	for i, w := range rec.writes {
		assert.Equal(t, []int{i}, w.idx)
		assert.Equal(t, ir.Int(10*(i+1)), w.v)
	}
}

func TestReplayThreeDimensional(t *testing.T) {
	rec := replayInto(t, ir.Seq{
		ir.Seq{ints(1, 2, 3, 4), ints(2, 3, 4, 5)},
		ir.Seq{ints(3, 4, 5, 6), ints(6, 7, 8, 9)},
	})
	require.Len(t, rec.writes, 16)
	assert.Equal(t, []int{0, 0, 0}, rec.writes[0].idx)
	assert.Equal(t, []int{0, 1, 3}, rec.writes[7].idx)
	assert.Equal(t, ir.Int(5), rec.writes[7].v)
	assert.Equal(t, []int{1, 0, 0}, rec.writes[8].idx)
	assert.Equal(t, []int{1, 1, 3}, rec.writes[15].idx)
	assert.Equal(t, ir.Int(9), rec.writes[15].v)
}

func TestReplayLargeNDim(t *testing.T) {
	rec := replayInto(t, nest(ints(42, -8), 99))
	require.Len(t, rec.writes, 2)
	want := make([]int, 100)
	want[99] = 1
	assert.Equal(t, want, rec.writes[1].idx)
	assert.Equal(t, ir.Int(-8), rec.writes[1].v)
}

func TestReplayEmpty(t *testing.T) {
	rec := &recorder{ndim: 2}
	require.NoError(t, Replay(nil, rec))
	assert.Empty(t, rec.writes)

	rec = replayInto(t, ir.Seq{ir.Seq{}, ir.Seq{}})
	assert.Empty(t, rec.writes)
}

func TestReplayPropagatesSetError(t *testing.T) {
	res, err := Infer(ir.Seq{ints(1, 2), ints(3, 4)}, dtype.None)
	require.NoError(t, err)

	rec := &recorder{ndim: 2, failAt: 3}
	err = Replay(res.Cache, rec)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Len(t, rec.writes, 2)
}
