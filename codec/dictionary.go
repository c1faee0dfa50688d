package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/bitpack"
	"github.com/arloliu/sparsa/internal/pool"
)

// Dictionary replaces every element with its index in a dictionary of distinct
// values and bit-packs the indices.
//
// Indices are assigned in first-occurrence order. Each index takes exactly
// ceil(log2(len(dict))) bits, packed MSB-first with no padding between
// elements; the final partial byte is zero-padded in its low bits. A
// single-entry dictionary has a bit width of 0 and an empty packed buffer.
type Dictionary struct {
	state
	dict     []uint32
	bitWidth uint8
	packed   []byte
}

// NewDictionary creates a Dictionary codec.
func NewDictionary() *Dictionary {
	return &Dictionary{state: state{mode: format.ModeDictionary}}
}

// Compress builds the dictionary and packs the per-element indices.
func (c *Dictionary) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim1D, format.Dim2D)
	if err != nil {
		return err
	}

	start := time.Now()

	indices, cleanup := pool.GetUint32Slice(len(flat))
	defer cleanup()

	lookup := make(map[uint32]uint32)
	c.dict = c.dict[:0]
	for i, v := range flat {
		idx, ok := lookup[v]
		if !ok {
			idx = uint32(len(c.dict)) //nolint: gosec
			lookup[v] = idx
			c.dict = append(c.dict, v)
		}
		indices[i] = idx
	}

	c.bitWidth = bitpack.Width(len(c.dict))
	c.packed = nil
	if c.bitWidth > 0 {
		w := bitpack.NewWriter()
		for _, idx := range indices {
			w.WriteBits(uint64(idx), int(c.bitWidth))
		}
		c.packed = w.Finish()
	}

	elapsed := time.Since(start)
	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress unpacks one index per element and looks each up in the dictionary.
func (c *Dictionary) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()

	if len(c.dict) == 0 {
		return nil, fmt.Errorf("%w: empty dictionary", errs.ErrCalculate)
	}

	out := make([]uint32, c.count())

	if c.bitWidth == 0 {
		if len(c.dict) != 1 {
			return nil, fmt.Errorf("%w: zero bit width for %d dictionary entries", errs.ErrCalculate, len(c.dict))
		}
		for i := range out {
			out[i] = c.dict[0]
		}
	} else {
		r := bitpack.NewReader(c.packed)
		for i := range out {
			idx, ok := r.ReadBits(int(c.bitWidth))
			if !ok {
				return nil, decodeError(errs.ErrIndexOutOfRange, "packed buffer exhausted at element %d", i)
			}
			if idx >= uint64(len(c.dict)) {
				return nil, decodeError(errs.ErrIndexOutOfRange, "index %d at element %d exceeds dictionary size %d", idx, i, len(c.dict))
			}
			out[i] = c.dict[idx]
		}
	}

	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

// sizes counts dictionary values and packed bytes, plus the bit width, the
// element count and the two length fields.
func (c *Dictionary) sizes() (uint32, uint32) {
	dict := uint32(len(c.dict))     //nolint: gosec
	packed := uint32(len(c.packed)) //nolint: gosec

	return dict + packed + 4, packed + dict*4 + 13
}

// AppendPayload writes the dictionary, the bit width and the packed indices.
func (c *Dictionary) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32s(c.dict)
	w.uint32(uint32(c.bitWidth))
	w.bytes(c.packed)

	return w.buf, nil
}

// LoadPayload restores the dictionary and packed indices.
func (c *Dictionary) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim1D, format.Dim2D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	dict := r.uint32s()
	width := r.uint32()
	packed := r.bytes()
	if err := r.finish(); err != nil {
		return err
	}
	if len(dict) == 0 || len(dict) > meta.Count() {
		return fmt.Errorf("%w: %d dictionary entries for %d elements", errs.ErrInvalidPayload, len(dict), meta.Count())
	}
	if width != uint32(bitpack.Width(len(dict))) {
		return fmt.Errorf("%w: bit width %d for %d dictionary entries", errs.ErrInvalidPayload, width, len(dict))
	}
	if want := bitpack.ByteLen(meta.Count() * int(width)); len(packed) != want {
		return fmt.Errorf("%w: %d packed bytes, expected %d", errs.ErrInvalidPayload, len(packed), want)
	}

	c.dict = dict
	c.bitWidth = uint8(width)
	c.packed = packed
	c.finishLoad(c.sizes())

	return nil
}
