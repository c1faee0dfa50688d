// Package bitpack packs fixed-width integers below byte granularity.
//
// Two bit orders are supported:
//   - MSB-first streams (Writer/Reader): each value is written high bit first,
//     values are concatenated without padding and the final byte is padded with
//     zero bits in its low-order positions.
//   - LSB-first bitmaps (SetLSB/TestLSB): bit i lives in byte i/8 at position i%8.
package bitpack

import (
	"encoding/binary"
	"math/bits"

	"github.com/arloliu/sparsa/internal/pool"
)

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}

// Width returns ceil(log2(n)), the number of bits needed to address n distinct
// indices. It returns 0 when n <= 1.
func Width(n int) uint8 {
	if n <= 1 {
		return 0
	}

	return uint8(bits.Len(uint(n - 1))) //nolint: gosec
}

// SetLSB sets bit i of an LSB-first bitmap.
func SetLSB(bitmap []byte, i int) {
	bitmap[i>>3] |= 1 << (i & 7)
}

// TestLSB reports whether bit i of an LSB-first bitmap is set.
func TestLSB(bitmap []byte, i int) bool {
	return bitmap[i>>3]&(1<<(i&7)) != 0
}

// Writer accumulates an MSB-first bit stream.
//
// Bits are gathered in a 64-bit buffer and flushed eight bytes at a time to a
// pooled byte buffer. Finish flushes the remainder and releases the buffer.
type Writer struct {
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
	total    int    // total bits written
	buf      *pool.ByteBuffer
}

// NewWriter creates a writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetBuffer()}
}

// WriteBits appends the low numBits bits of value, most significant bit first.
//
// numBits must be in the range 0-64. Writing zero bits is a no-op.
func (w *Writer) WriteBits(value uint64, numBits int) {
	if w.buf == nil {
		panic("bitpack: write after Finish")
	}
	if numBits == 0 {
		return
	}

	if numBits < 64 {
		value &= (1 << numBits) - 1
	}
	w.total += numBits

	available := 64 - w.bitCount
	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits

		if w.bitCount == 64 {
			w.flush()
		}

		return
	}

	// Split across the buffer boundary: high bits first.
	rest := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> rest)
	w.bitCount = 64
	w.flush()

	w.bitBuf = value & ((1 << rest) - 1)
	w.bitCount = rest
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.total
}

// Finish flushes pending bits and returns the packed bytes.
//
// The returned slice is owned by the caller. The writer cannot be used afterwards.
func (w *Writer) Finish() []byte {
	if w.buf == nil {
		panic("bitpack: Finish called twice")
	}

	w.flush()

	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	pool.PutBuffer(w.buf)
	w.buf = nil

	return out
}

// flush writes the pending bits left-aligned, so a partial final byte is padded
// with zeros in its low-order bits.
func (w *Writer) flush() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8
	aligned := w.bitBuf << (64 - w.bitCount)

	start := w.buf.Len()
	w.buf.ExtendOrGrow(numBytes)
	bs := w.buf.Slice(start, start+numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(bs, aligned)
	} else {
		for i := range numBytes {
			bs[i] = byte(aligned >> (56 - i*8))
		}
	}

	w.bitBuf = 0
	w.bitCount = 0
}

// Reader consumes an MSB-first bit stream produced by Writer.
type Reader struct {
	data     []byte
	bytePos  int
	bitBuf   uint64 // pending bits, left-aligned
	bitCount int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBits reads numBits bits (0-64) and returns them right-aligned.
//
// It returns false when the stream ends before numBits bits are available.
func (r *Reader) ReadBits(numBits int) (uint64, bool) {
	var result uint64

	for numBits > 0 {
		if r.bitCount == 0 && !r.fill() {
			return 0, false
		}

		take := min(numBits, r.bitCount)
		result = (result << take) | (r.bitBuf >> (64 - take))
		r.bitBuf <<= take
		r.bitCount -= take
		numBits -= take
	}

	return result, true
}

// fill loads up to eight bytes into the empty bit buffer.
func (r *Reader) fill() bool {
	remaining := len(r.data) - r.bytePos
	if remaining <= 0 {
		return false
	}

	if remaining >= 8 {
		r.bitBuf = binary.BigEndian.Uint64(r.data[r.bytePos:])
		r.bitCount = 64
		r.bytePos += 8

		return true
	}

	var v uint64
	for _, b := range r.data[r.bytePos:] {
		v = (v << 8) | uint64(b)
	}
	r.bitBuf = v << (64 - 8*remaining)
	r.bitCount = 8 * remaining
	r.bytePos = len(r.data)

	return true
}
