package wire

import (
	"github.com/arloliu/sparsa/compress"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/options"
)

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderConfig holds the settings used by Marshal.
type EncoderConfig struct {
	compression format.CompressionType
	codec       compress.Codec
	endian      endianness
}

// newEncoderConfig returns the defaults: little-endian, no compression.
func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
		endian:      littleEndianOpt,
	}
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "payload")
	if err != nil {
		return err
	}

	c.compression = comp
	c.codec = codec

	return nil
}

// EncoderOption represents a functional option for configuring Marshal.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian writes header and payload in little-endian byte order.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.endian = littleEndianOpt
	})
}

// WithBigEndian writes header and payload in big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.endian = bigEndianOpt
	})
}

// WithCompression sets the second-stage compression applied to the payload.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}
