// Package array defines the input model shared by every sparsa codec.
//
// An Array is a closed tagged union with exactly two cases:
//   - OneD: a flat sequence of uint32 values.
//   - TwoD: a row-major matrix with explicit row and column counts.
//
// The union is sealed; no other package can add a third case.
package array

import (
	"fmt"
	"slices"

	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/hash"
)

// Array is either a OneD or a TwoD value.
type Array interface {
	// Kind reports which case of the union is active.
	Kind() format.Dimension
	// Len returns the total number of elements.
	Len() int

	sealed()
}

// OneD is a flat sequence of values.
type OneD struct {
	Values []uint32
}

// TwoD is a row-major matrix. len(Values) must equal Rows and every row must
// hold exactly Cols values.
type TwoD struct {
	Rows   uint32
	Cols   uint32
	Values [][]uint32
}

var (
	_ Array = OneD{}
	_ Array = TwoD{}
)

func (OneD) Kind() format.Dimension { return format.Dim1D }
func (a OneD) Len() int             { return len(a.Values) }
func (OneD) sealed()                {}

func (TwoD) Kind() format.Dimension { return format.Dim2D }
func (a TwoD) Len() int             { return int(a.Rows) * int(a.Cols) }
func (TwoD) sealed()                {}

// Filled returns a rows × cols matrix with every cell set to v.
func Filled(rows, cols, v uint32) TwoD {
	flat := make([]uint32, int(rows)*int(cols))
	if v != 0 {
		for i := range flat {
			flat[i] = v
		}
	}

	m, _ := Reshape(flat, rows, cols)

	return m
}

// Validate checks that a is non-empty and structurally consistent.
//
// Returns:
//   - errs.ErrInputEmpty: a is nil or holds no elements
//   - errs.ErrParamInvalid: a TwoD whose row slices disagree with Rows/Cols
func Validate(a Array) error {
	switch v := a.(type) {
	case nil:
		return errs.ErrInputEmpty
	case OneD:
		if len(v.Values) == 0 {
			return errs.ErrInputEmpty
		}
	case TwoD:
		if v.Rows == 0 || v.Cols == 0 || len(v.Values) == 0 {
			return errs.ErrInputEmpty
		}
		if len(v.Values) != int(v.Rows) {
			return fmt.Errorf("%w: %d rows declared, %d present", errs.ErrParamInvalid, v.Rows, len(v.Values))
		}
		for r, row := range v.Values {
			if len(row) != int(v.Cols) {
				return fmt.Errorf("%w: row %d has %d columns, expected %d", errs.ErrParamInvalid, r, len(row), v.Cols)
			}
		}
	}

	return nil
}

// Shape returns the row and column counts of a. A OneD is reported as a
// single row.
func Shape(a Array) (rows, cols uint32) {
	switch v := a.(type) {
	case OneD:
		return 1, uint32(len(v.Values)) //nolint: gosec
	case TwoD:
		return v.Rows, v.Cols
	}

	return 0, 0
}

// Flatten returns a row-major copy of the values held by a.
func Flatten(a Array) []uint32 {
	switch v := a.(type) {
	case OneD:
		return slices.Clone(v.Values)
	case TwoD:
		flat := make([]uint32, 0, v.Len())
		for _, row := range v.Values {
			flat = append(flat, row...)
		}

		return flat
	}

	return nil
}

// Reshape splits flat into a rows × cols row-major matrix.
//
// The rows of the result share flat's backing array.
//
// Returns:
//   - TwoD: the reshaped matrix
//   - error: errs.ErrParamInvalid if a dimension is zero or rows*cols != len(flat)
func Reshape(flat []uint32, rows, cols uint32) (TwoD, error) {
	if rows == 0 || cols == 0 {
		return TwoD{}, fmt.Errorf("%w: reshape to %dx%d", errs.ErrParamInvalid, rows, cols)
	}
	if uint64(rows)*uint64(cols) != uint64(len(flat)) {
		return TwoD{}, fmt.Errorf("%w: cannot reshape %d values to %dx%d", errs.ErrParamInvalid, len(flat), rows, cols)
	}

	values := make([][]uint32, rows)
	c := int(cols)
	for r := range values {
		values[r] = flat[r*c : (r+1)*c : (r+1)*c]
	}

	return TwoD{Rows: rows, Cols: cols, Values: values}, nil
}

// Equal reports whether a and b have the same kind, shape and values.
func Equal(a, b Array) bool {
	switch x := a.(type) {
	case OneD:
		y, ok := b.(OneD)
		return ok && slices.Equal(x.Values, y.Values)
	case TwoD:
		y, ok := b.(TwoD)
		if !ok || x.Rows != y.Rows || x.Cols != y.Cols || len(x.Values) != len(y.Values) {
			return false
		}
		for r := range x.Values {
			if !slices.Equal(x.Values[r], y.Values[r]) {
				return false
			}
		}

		return true
	}

	return a == nil && b == nil
}

// Fingerprint returns the xxHash64 of a's kind, shape and values.
//
// It equals FingerprintFlat(a.Kind(), rows, cols, Flatten(a)) without building
// the flattened copy.
func Fingerprint(a Array) uint64 {
	if a == nil {
		return 0
	}

	rows, cols := Shape(a)
	d := newShapeDigest(a.Kind(), rows, cols)

	switch v := a.(type) {
	case OneD:
		d.WriteUint32s(v.Values)
	case TwoD:
		for _, row := range v.Values {
			d.WriteUint32s(row)
		}
	}

	return d.Sum64()
}

// FingerprintFlat fingerprints an already flattened array.
func FingerprintFlat(kind format.Dimension, rows, cols uint32, flat []uint32) uint64 {
	d := newShapeDigest(kind, rows, cols)
	d.WriteUint32s(flat)

	return d.Sum64()
}

func newShapeDigest(kind format.Dimension, rows, cols uint32) *hash.Digest {
	d := hash.NewDigest()
	d.WriteUint8(uint8(kind))
	d.WriteUint32(rows)
	d.WriteUint32(cols)

	return d
}
