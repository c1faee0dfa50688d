package wire

import (
	"fmt"

	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/compress"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/internal/options"
	"github.com/arloliu/sparsa/section"
)

// Unmarshal rebuilds a codec serialized by Marshal.
//
// The returned codec is in the compressed state: Decompress rebuilds the array
// and verifies it against the fingerprint stored in the header, and Result
// reports the size accounting with a zero CompressTimeMs.
//
// The header's shape and raw payload length are checked against the element
// limit (DefaultMaxElements unless WithMaxElements is given) before anything
// is decompressed, and every codec checks its payload against the shape while
// loading, so Decompress never allocates more than the limit allows.
//
// Parameters:
//   - data: Serialized codec
//   - opts: Decoder options
//
// Returns:
//   - codec.Codec: Restored codec of the header's mode
//   - error: section header errors, errs.ErrInvalidPayload for a truncated,
//     malformed or oversized payload, or decompression errors
func Unmarshal(data []byte, opts ...DecoderOption) (codec.Codec, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	count := uint64(header.Rows) * uint64(header.Cols)
	if count > cfg.maxElements {
		return nil, fmt.Errorf("%w: %dx%d array exceeds the limit of %d elements",
			errs.ErrInvalidPayload, header.Rows, header.Cols, cfg.maxElements)
	}
	if limit := maxRawPayload(count); uint64(header.RawPayloadLength) > limit {
		return nil, fmt.Errorf("%w: raw payload of %d bytes exceeds %d for a %dx%d array",
			errs.ErrInvalidPayload, header.RawPayloadLength, limit, header.Rows, header.Cols)
	}

	body := data[section.HeaderSize:]
	if uint64(len(body)) != uint64(header.PayloadLength) {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, got %d",
			errs.ErrInvalidPayload, header.PayloadLength, len(body))
	}

	decompressor, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := compress.DecompressSize(decompressor, body, int(header.RawPayloadLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}

	c, err := codec.New(header.Mode)
	if err != nil {
		return nil, err
	}

	pm, ok := c.(codec.PayloadMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %s codec cannot be restored", errs.ErrParamInvalid, header.Mode)
	}

	meta := codec.Meta{
		Mode:        header.Mode,
		Kind:        header.Dimension,
		Rows:        header.Rows,
		Cols:        header.Cols,
		Fingerprint: header.Fingerprint,
	}
	if err := pm.LoadPayload(meta, raw, header.Flag.GetEndianEngine()); err != nil {
		return nil, err
	}

	return c, nil
}
