package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/bitpack"
)

// BitmapPayload stores one bit per element, set when the element differs from
// the main value, plus the differing values in their original order.
//
// The bitmap is LSB-first: element i is bit i%8 of byte i/8. 2-D input is
// flattened row-major and reshaped on Decompress.
type BitmapPayload struct {
	state
	mainValue uint32
	bitNum    uint32
	bitmap    []byte
	payload   []uint32
}

// NewBitmapPayload creates a BitmapPayload codec.
func NewBitmapPayload() *BitmapPayload {
	return &BitmapPayload{state: state{mode: format.ModeBitmapPayload}}
}

// Compress builds the presence bitmap and the payload.
func (c *BitmapPayload) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim1D, format.Dim2D)
	if err != nil {
		return err
	}

	start := time.Now()

	c.mainValue = mainValue(flat)
	c.bitNum = uint32(len(flat)) //nolint: gosec
	c.bitmap = make([]byte, bitpack.ByteLen(len(flat)))
	c.payload = c.payload[:0]

	for i, v := range flat {
		if v != c.mainValue {
			bitpack.SetLSB(c.bitmap, i)
			c.payload = append(c.payload, v)
		}
	}

	elapsed := time.Since(start)
	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress walks the bitmap, taking the next payload value for every set bit
// and the main value for every clear one.
func (c *BitmapPayload) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()

	n := int(c.bitNum)
	if n != c.count() || len(c.bitmap) != bitpack.ByteLen(n) {
		return nil, fmt.Errorf("%w: bitmap of %d bits in %d bytes for %d elements",
			errs.ErrCalculate, n, len(c.bitmap), c.count())
	}

	out := make([]uint32, n)
	p := 0
	for i := range out {
		if !bitpack.TestLSB(c.bitmap, i) {
			out[i] = c.mainValue
			continue
		}
		if p >= len(c.payload) {
			return nil, decodeError(errs.ErrIndexOutOfRange, "bit %d needs payload entry %d of %d", i, p, len(c.payload))
		}
		out[i] = c.payload[p]
		p++
	}
	if p != len(c.payload) {
		return nil, fmt.Errorf("%w: %d payload entries unused", errs.ErrCalculate, len(c.payload)-p)
	}

	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

// sizes counts bitmap bytes and payload values, plus the main value, the bit
// count and the two length fields.
func (c *BitmapPayload) sizes() (uint32, uint32) {
	bitmap := uint32(len(c.bitmap))   //nolint: gosec
	payload := uint32(len(c.payload)) //nolint: gosec

	return bitmap + payload + 4, bitmap + payload*4 + 16
}

// AppendPayload writes the main value, the bit count, the bitmap and the payload.
func (c *BitmapPayload) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32(c.mainValue)
	w.uint32(c.bitNum)
	w.bytes(c.bitmap)
	w.uint32s(c.payload)

	return w.buf, nil
}

// LoadPayload restores the bitmap and payload.
func (c *BitmapPayload) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim1D, format.Dim2D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	mv := r.uint32()
	bitNum := r.uint32()
	bitmap := r.bytes()
	values := r.uint32s()
	if err := r.finish(); err != nil {
		return err
	}
	n := meta.Count()
	if int(bitNum) != n || len(bitmap) != bitpack.ByteLen(n) || len(values) > n {
		return fmt.Errorf("%w: bitmap of %d bits in %d bytes with %d values for %d elements",
			errs.ErrInvalidPayload, bitNum, len(bitmap), len(values), n)
	}

	c.mainValue = mv
	c.bitNum = bitNum
	c.bitmap = bitmap
	c.payload = values
	c.finishLoad(c.sizes())

	return nil
}
