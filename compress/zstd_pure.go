//go:build !cgo || !gozstd

package compress

import (
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
)

func newZstdDecoder(opts ...zstd.DOption) *zstd.Decoder {
	decoder, err := zstd.NewReader(nil, append([]zstd.DOption{zstd.WithDecoderConcurrency(1)}, opts...)...)
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
	}

	return decoder
}

// zstdDecoderPool serves Decompress, where the output length is unknown.
var zstdDecoderPool = sync.Pool{
	New: func() any { return newZstdDecoder() },
}

// zstdSizedDecoderPool serves DecompressSize. Its decoders never write past
// the capacity of the destination slice, so a frame lying about its size
// cannot grow the output beyond what the caller expects.
var zstdSizedDecoderPool = sync.Pool{
	New: func() any {
		return newZstdDecoder(
			zstd.WithDecoderMaxMemory(math.MaxUint32),
			zstd.WithDecodeAllCapLimit(true),
		)
	},
}

// zstdEncoderPool pools encoders; payloads carry no checksum since the wire
// header fingerprint covers the decoded array.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress encodes data as a single zstd frame that records its content size.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes data of unknown decompressed length.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

// DecompressSize decodes data whose decompressed length is known.
//
// The frame header is checked against size first, and decoding never writes
// more than size bytes.
//
// Parameters:
//   - data: Compressed data
//   - size: Exact decompressed length
//
// Returns:
//   - []byte: Decompressed data (nil if size is zero and data is empty)
//   - error: Header mismatch, corruption, or a length mismatch
func (c ZstdCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 && size == 0 {
		return nil, nil
	}
	if err := checkZstdFrame(data, size); err != nil {
		return nil, err
	}

	decoder, _ := zstdSizedDecoderPool.Get().(*zstd.Decoder)
	defer zstdSizedDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("zstd: decompressed %d bytes, expected %d", len(out), size)
	}

	return out, nil
}
