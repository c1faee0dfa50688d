package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

type run struct {
	Value  uint32
	Length uint32
}

// RunLength stores (value, length) pairs for consecutive equal values. Only
// 1-D input is accepted. Adjacent runs never share a value.
type RunLength struct {
	state
	runs []run
}

// NewRunLength creates a RunLength codec.
func NewRunLength() *RunLength {
	return &RunLength{state: state{mode: format.ModeRunLength}}
}

// Compress scans input left to right and emits a run whenever the value changes.
func (c *RunLength) Compress(input array.Array) error {
	flat, err := c.begin(input, format.Dim1D)
	if err != nil {
		return err
	}

	start := time.Now()

	c.runs = c.runs[:0]
	cur := run{Value: flat[0], Length: 1}
	for _, v := range flat[1:] {
		if v == cur.Value {
			cur.Length++
			continue
		}
		c.runs = append(c.runs, cur)
		cur = run{Value: v, Length: 1}
	}
	c.runs = append(c.runs, cur)

	elapsed := time.Since(start)
	elems, size := c.sizes()
	c.finishCompress(elapsed, elems, size)

	return nil
}

// Decompress expands every run in order.
func (c *RunLength) Decompress() (array.Array, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	start := time.Now()

	var total uint64
	for _, r := range c.runs {
		total += uint64(r.Length)
	}
	if total != uint64(c.count()) {
		return nil, fmt.Errorf("%w: runs cover %d elements, expected %d", errs.ErrCalculate, total, c.count())
	}

	out := make([]uint32, 0, c.count())
	for _, r := range c.runs {
		for range r.Length {
			out = append(out, r.Value)
		}
	}

	elapsed := time.Since(start)

	return c.finishDecompress(out, elapsed)
}

func (c *RunLength) sizes() (uint32, uint32) {
	n := uint32(len(c.runs)) //nolint: gosec
	return n * 2, n * 8
}

// AppendPayload writes the run count followed by (value, length) pairs.
func (c *RunLength) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if err := c.checkReady(); err != nil {
		return nil, err
	}

	w := newPayloadWriter(dst, engine)
	w.uint32(uint32(len(c.runs))) //nolint: gosec
	for _, r := range c.runs {
		w.uint32(r.Value)
		w.uint32(r.Length)
	}

	return w.buf, nil
}

// LoadPayload restores the runs.
func (c *RunLength) LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error {
	if err := c.beginLoad(meta, format.Dim1D); err != nil {
		return err
	}

	r := newPayloadReader(payload, engine)
	n := int(r.uint32())
	if r.err == nil && n > r.remaining()/8 {
		r.fail("%d runs declared, %d bytes left", n, r.remaining())
	}

	var runs []run
	if r.err == nil {
		runs = make([]run, n)
		for i := range runs {
			runs[i] = run{Value: r.uint32(), Length: r.uint32()}
		}
	}
	if err := r.finish(); err != nil {
		return err
	}

	var total uint64
	for _, rn := range runs {
		total += uint64(rn.Length)
	}
	if total != uint64(meta.Count()) { //nolint: gosec
		return fmt.Errorf("%w: runs cover %d elements, expected %d", errs.ErrInvalidPayload, total, meta.Count())
	}

	c.runs = runs
	c.finishLoad(c.sizes())

	return nil
}
