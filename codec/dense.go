package codec

import (
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// Dense stores an unmodified copy of the input. Its CompressionRatio is always
// 100, which makes it the baseline for the other codecs.
type Dense struct {
	state
	data []uint32
}

// NewDense creates a Dense codec.
func NewDense() *Dense {
	return &Dense{state: state{mode: format.ModeDense}}
}

// Compress copies input. Both 1-D and 2-D inputs are accepted.
func (c *Dense) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim1D, format.Dim2D)
	if err != nil {
		return err
	}

	start := time.Now()
	c.data = slices.Clone(flat)
	elapsed := time.Since(start)

	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress returns a copy of the stored data in the original shape.
func (c *Dense) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()
	out := slices.Clone(c.data)
	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

func (c *Dense) sizes() (uint32, uint32) {
	n := uint32(len(c.data)) //nolint: gosec
	return n, n * 4
}

// AppendPayload writes the stored values.
func (c *Dense) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32s(c.data)

	return w.buf, nil
}

// LoadPayload restores the stored values.
func (c *Dense) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim1D, format.Dim2D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	data := r.uint32s()
	if err := r.finish(); err != nil {
		return err
	}
	if len(data) != meta.Count() {
		return fmt.Errorf("%w: %d values for %d elements", errs.ErrInvalidPayload, len(data), meta.Count())
	}

	c.data = data
	c.finishLoad(c.sizes())

	return nil
}
