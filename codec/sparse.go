package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// sparseLayout is the compressed sparse representation shared by CSR and CSC.
//
// For CSR the major axis is rows and index holds column positions; for CSC the
// major axis is columns and index holds row positions. offsets has one entry
// per major line plus a final total: the non-main cells of line k are
// values[offsets[k]:offsets[k+1]].
type sparseLayout struct {
	state
	columnMajor bool
	mainValue   uint32
	values      []uint32
	index       []uint32
	offsets     []uint32
}

// CSR is the compressed sparse row codec. Only 2-D input is accepted.
type CSR struct {
	sparseLayout
}

// CSC is the compressed sparse column codec. Only 2-D input is accepted.
type CSC struct {
	sparseLayout
}

// NewCSR creates a CSR codec.
func NewCSR() *CSR {
	return &CSR{sparseLayout{state: state{mode: format.ModeCSR}}}
}

// NewCSC creates a CSC codec.
func NewCSC() *CSC {
	return &CSC{sparseLayout{state: state{mode: format.ModeCSC}, columnMajor: true}}
}

// axes returns the lengths of the major and minor axes.
func (c *sparseLayout) axes() (major, minor int) {
	if c.columnMajor {
		return int(c.cols), int(c.rows)
	}

	return int(c.rows), int(c.cols)
}

// position maps a (major, minor) coordinate to its row-major flat index.
func (c *sparseLayout) position(major, minor int) int {
	if c.columnMajor {
		return minor*int(c.cols) + major
	}

	return major*int(c.cols) + minor
}

// Compress records every non-main cell line by line along the major axis.
func (c *sparseLayout) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim2D)
	if err != nil {
		return err
	}

	start := time.Now()

	c.mainValue = mainValue(flat)
	c.values = c.values[:0]
	c.index = c.index[:0]

	major, minor := c.axes()
	c.offsets = make([]uint32, major+1)
	for k := range major {
		c.offsets[k] = uint32(len(c.values)) //nolint: gosec
		for m := range minor {
			v := flat[c.position(k, m)]
			if v == c.mainValue {
				continue
			}
			c.values = append(c.values, v)
			c.index = append(c.index, uint32(m)) //nolint: gosec
		}
	}
	c.offsets[major] = uint32(len(c.values)) //nolint: gosec

	elapsed := time.Since(start)
	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress fills a matrix with the main value and writes each recorded cell.
func (c *sparseLayout) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()

	if err := c.checkLayout(); err != nil {
		return nil, err
	}

	out := make([]uint32, c.count())
	for i := range out {
		out[i] = c.mainValue
	}

	major, minor := c.axes()
	for k := range major {
		for p := c.offsets[k]; p < c.offsets[k+1]; p++ {
			m := int(c.index[p])
			if m >= minor {
				return nil, decodeError(errs.ErrIndexOutOfRange, "minor index %d at line %d exceeds %d", m, k, minor)
			}
			out[c.position(k, m)] = c.values[p]
		}
	}

	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

// checkLayout validates that offsets is a monotonic table covering values.
func (c *sparseLayout) checkLayout() error {
	major, _ := c.axes()
	if len(c.offsets) != major+1 {
		return fmt.Errorf("%w: %d offsets for %d lines", errs.ErrCalculate, len(c.offsets), major)
	}
	if len(c.values) != len(c.index) {
		return fmt.Errorf("%w: %d values but %d indices", errs.ErrCalculate, len(c.values), len(c.index))
	}
	if c.offsets[0] != 0 || int(c.offsets[major]) != len(c.values) {
		return fmt.Errorf("%w: offsets span %d..%d, expected 0..%d",
			errs.ErrCalculate, c.offsets[0], c.offsets[major], len(c.values))
	}
	for k := range major {
		if c.offsets[k] > c.offsets[k+1] {
			return fmt.Errorf("%w: offsets decrease at line %d", errs.ErrCalculate, k)
		}
	}

	return nil
}

func (c *sparseLayout) sizes() (uint32, uint32) {
	elems := uint32(len(c.values) + len(c.index) + len(c.offsets)) //nolint: gosec
	return elems, elems*4 + 12
}

// AppendPayload writes the main value followed by values, index and offsets.
func (c *sparseLayout) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32(c.mainValue)
	w.uint32s(c.values)
	w.uint32s(c.index)
	w.uint32s(c.offsets)

	return w.buf, nil
}

// LoadPayload restores the sparse layout.
func (c *sparseLayout) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim2D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	mv := r.uint32()
	values := r.uint32s()
	index := r.uint32s()
	offsets := r.uint32s()
	if err := r.finish(); err != nil {
		return err
	}

	c.mainValue = mv
	c.values = values
	c.index = index
	c.offsets = offsets
	if err := c.checkLayout(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	c.finishLoad(c.sizes())

	return nil
}
