package codec

import (
	"time"

	"github.com/arloliu/sparsa/format"
)

// Result captures the measurements of one codec run.
type Result struct {
	// ModeName is the codec's registry name.
	ModeName string

	OriginElementCount     uint32
	CompressedElementCount uint32
	OriginSizeBytes        uint32
	CompressedSizeBytes    uint32

	// CompressTimeMs brackets only the encoding core. It is zero for a codec
	// restored from a payload.
	CompressTimeMs float64
	// DecompressTimeMs is set once Decompress succeeds.
	DecompressTimeMs float64

	// CompressionRatio is CompressedSizeBytes / OriginSizeBytes * 100.
	CompressionRatio float64
}

// SpaceSavings returns the space saved as a percentage of the original size.
//
// Negative values mean the compressed form is larger than the original.
//
// Returns:
//   - float64: 100 - CompressionRatio, or 0 when nothing was compressed
func (r Result) SpaceSavings() float64 {
	if r.OriginSizeBytes == 0 {
		return 0
	}

	return 100 - r.CompressionRatio
}

func newResult(mode format.Mode, count int, elems, size uint32, elapsed time.Duration) Result {
	origin := uint32(count) //nolint: gosec

	r := Result{
		ModeName:               mode.String(),
		OriginElementCount:     origin,
		CompressedElementCount: elems,
		OriginSizeBytes:        origin * 4,
		CompressedSizeBytes:    size,
		CompressTimeMs:         toMillis(elapsed),
	}
	if r.OriginSizeBytes > 0 {
		r.CompressionRatio = float64(size) / float64(r.OriginSizeBytes) * 100
	}

	return r
}

func toMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}
