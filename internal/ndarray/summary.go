package ndarray

import (
	"github.com/roach88/ndview/internal/ir"
)

// Summary describes an array for display and snapshots.
type Summary struct {
	Shape    []int  `json:"shape"`
	NDim     int    `json:"ndim"`
	DType    string `json:"dtype"`
	Order    string `json:"order"`
	ItemSize int    `json:"item_size"`
	ByteSize int    `json:"byte_size"`
	Strides  []int  `json:"strides"`
	Items    any    `json:"items"`

	// Digest identifies the snapshot (see ir.ArrayDigest). Empty when the
	// items have no canonical form, e.g. NaN.
	Digest string `json:"digest,omitempty"`
}

// Summarize describes a. Items are plain Go values (see ir.ToGo).
func (a *NDArray) Summarize() Summary {
	return Summary{
		Shape:    a.Shape(),
		NDim:     a.NDim(),
		DType:    a.dtype.String(),
		Order:    a.order.String(),
		ItemSize: a.itemSize,
		ByteSize: a.ByteSize(),
		Strides:  a.Strides(),
		Items:    ir.ToGo(a.ToValue()),
		Digest:   a.Digest(),
	}
}

// Digest returns the content digest of a's snapshot, or "" if it has no
// canonical encoding.
func (a *NDArray) Digest() string {
	d, err := ir.ArrayDigest(a.Snapshot())
	if err != nil {
		return ""
	}
	return d
}

// Snapshot returns a map suitable for ir.MarshalCanonical.
func (a *NDArray) Snapshot() map[string]any {
	return map[string]any{
		"shape":     a.Shape(),
		"dtype":     a.dtype.String(),
		"order":     a.order.String(),
		"byte_size": a.ByteSize(),
		"strides":   a.Strides(),
		"items":     a.ToValue(),
	}
}
