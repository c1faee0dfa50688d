package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/sparsa/format"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs.
//
// The pure Go implementation from klauspost/compress is used by default.
// Building with the gozstd tag (and cgo enabled) switches to the cgo binding
// of the reference library. Both write the frame content size, which
// DecompressSize checks before decoding anything.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}

// checkZstdFrame rejects data whose first frame is not a regular zstd frame or
// declares a content size other than size.
func checkZstdFrame(data []byte, size int) error {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd: invalid frame header: %w", err)
	}
	if h.Skippable {
		return errors.New("zstd: unexpected skippable frame")
	}
	if h.HasFCS && h.FrameContentSize != uint64(size) { //nolint: gosec
		return fmt.Errorf("zstd: frame declares %d bytes, expected %d", h.FrameContentSize, size)
	}

	return nil
}
