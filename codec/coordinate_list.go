package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// coordinate is a 1-based (row, col, value) triple.
type coordinate struct {
	Row   uint32
	Col   uint32
	Value uint32
}

// CoordinateList stores one 1-based (row, col, value) triple for every cell
// that differs from the main value. A header triple (rows, cols, main value)
// leads the list. Only 2-D input is accepted.
type CoordinateList struct {
	state
	header  coordinate
	entries []coordinate
}

// NewCoordinateList creates a CoordinateList codec.
func NewCoordinateList() *CoordinateList {
	return &CoordinateList{state: state{mode: format.ModeCoordinateList}}
}

// Compress records the non-main cells of a 2-D input.
func (c *CoordinateList) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim2D)
	if err != nil {
		return err
	}

	start := time.Now()

	mv := mainValue(flat)
	c.header = coordinate{Row: c.rows, Col: c.cols, Value: mv}
	c.entries = c.entries[:0]

	cols := int(c.cols)
	for i, v := range flat {
		if v == mv {
			continue
		}
		c.entries = append(c.entries, coordinate{
			Row:   uint32(i/cols) + 1, //nolint: gosec
			Col:   uint32(i%cols) + 1, //nolint: gosec
			Value: v,
		})
	}

	elapsed := time.Since(start)
	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress fills a rows × cols matrix with the main value and overwrites the
// recorded cells.
func (c *CoordinateList) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()

	rows, cols := c.header.Row, c.header.Col
	if rows != c.rows || cols != c.cols {
		return nil, fmt.Errorf("%w: header shape %dx%d, expected %dx%d", errs.ErrCalculate, rows, cols, c.rows, c.cols)
	}

	out := make([]uint32, int(rows)*int(cols))
	for i := range out {
		out[i] = c.header.Value
	}

	for _, e := range c.entries {
		if e.Row == 0 || e.Row > rows || e.Col == 0 || e.Col > cols {
			return nil, decodeError(errs.ErrIndexOutOfRange, "coordinate (%d, %d) outside %dx%d", e.Row, e.Col, rows, cols)
		}
		out[int(e.Row-1)*int(cols)+int(e.Col-1)] = e.Value
	}

	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

// sizes counts the header triple plus one triple per entry.
func (c *CoordinateList) sizes() (uint32, uint32) {
	triples := uint32(len(c.entries)) + 1 //nolint: gosec
	return triples * 3, triples * 12
}

// AppendPayload writes the header triple followed by the counted entries.
func (c *CoordinateList) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32(c.header.Row)
	w.uint32(c.header.Col)
	w.uint32(c.header.Value)
	w.uint32(uint32(len(c.entries))) //nolint: gosec
	for _, e := range c.entries {
		w.uint32(e.Row)
		w.uint32(e.Col)
		w.uint32(e.Value)
	}

	return w.buf, nil
}

// LoadPayload restores the header and entries.
func (c *CoordinateList) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim2D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	header := coordinate{Row: r.uint32(), Col: r.uint32(), Value: r.uint32()}

	n := int(r.uint32())
	if r.err == nil && n > r.remaining()/12 {
		r.fail("%d entries declared, %d bytes left", n, r.remaining())
	}

	var entries []coordinate
	if r.err == nil {
		entries = make([]coordinate, n)
		for i := range entries {
			entries[i] = coordinate{Row: r.uint32(), Col: r.uint32(), Value: r.uint32()}
		}
	}
	if err := r.finish(); err != nil {
		return err
	}
	if header.Row != meta.Rows || header.Col != meta.Cols {
		return fmt.Errorf("%w: header shape %dx%d, expected %dx%d",
			errs.ErrInvalidPayload, header.Row, header.Col, meta.Rows, meta.Cols)
	}
	if len(entries) > meta.Count() {
		return fmt.Errorf("%w: %d entries for %d elements", errs.ErrInvalidPayload, len(entries), meta.Count())
	}

	c.header = header
	c.entries = entries
	c.finishLoad(c.sizes())

	return nil
}
