// Package hash wraps xxHash64 for the fingerprints used by sparsa.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// chunkValues is the number of uint32 values staged per Write call.
const chunkValues = 256

// Digest streams fixed-width integers into an xxHash64 state.
//
// Integers are always fed in little-endian order so fingerprints do not depend
// on the byte order chosen for serialization.
type Digest struct {
	d   *xxhash.Digest
	buf [chunkValues * 4]byte
}

// NewDigest creates an empty digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteUint8 feeds a single byte.
func (d *Digest) WriteUint8(v uint8) {
	d.buf[0] = v
	_, _ = d.d.Write(d.buf[:1])
}

// WriteUint32 feeds a single uint32.
func (d *Digest) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(d.buf[:4], v)
	_, _ = d.d.Write(d.buf[:4])
}

// WriteUint32s feeds a sequence of uint32 values.
func (d *Digest) WriteUint32s(values []uint32) {
	for len(values) > 0 {
		n := min(len(values), chunkValues)
		for i, v := range values[:n] {
			binary.LittleEndian.PutUint32(d.buf[i*4:], v)
		}
		_, _ = d.d.Write(d.buf[:n*4])
		values = values[n:]
	}
}

// Sum64 returns the current hash.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
