package wire

import (
	"fmt"
	"math"

	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/internal/options"
	"github.com/arloliu/sparsa/internal/pool"
	"github.com/arloliu/sparsa/section"
)

// Marshal serializes a compressed codec.
//
// Parameters:
//   - c: Codec that has completed a successful Compress (or a restored codec)
//   - opts: Encoder options (byte order, payload compression)
//
// Returns:
//   - []byte: Header followed by the payload
//   - error: errs.ErrNotCompressed before Compress, errs.ErrParamInvalid when c
//     cannot be persisted, or option and compression errors
func Marshal(c codec.Codec, opts ...EncoderOption) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil codec", errs.ErrParamInvalid)
	}

	pm, ok := c.(codec.PayloadMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %s codec cannot be persisted", errs.ErrParamInvalid, c.Mode())
	}

	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	meta, err := pm.Meta()
	if err != nil {
		return nil, err
	}

	header := section.NewHeader(meta.Mode, meta.Kind)
	if cfg.endian == bigEndianOpt {
		header.Flag.WithBigEndian()
	}
	header.Compression = cfg.compression
	header.Rows = meta.Rows
	header.Cols = meta.Cols
	header.Fingerprint = meta.Fingerprint

	engine := header.Flag.GetEndianEngine()

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	raw, err := pm.AppendPayload(buf.B[:0], engine)
	if err != nil {
		return nil, err
	}
	buf.B = raw

	payload, err := cfg.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress %s payload: %w", meta.Mode, err)
	}

	if len(raw) > math.MaxUint32 || len(payload) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds the header limit", errs.ErrParamInvalid, len(raw))
	}
	header.RawPayloadLength = uint32(len(raw))  //nolint: gosec
	header.PayloadLength = uint32(len(payload)) //nolint: gosec

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = header.AppendTo(out)
	out = append(out, payload...)

	return out, nil
}
