package section

import (
	"fmt"

	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// Header is the fixed-size section at the start of a serialized codec.
type Header struct {
	// Flag carries the magic number and the byte order.
	Flag Flag // byte offset 0-1
	// Mode identifies the codec that produced the payload.
	Mode format.Mode // byte offset 2
	// Dimension is the kind of the original array.
	Dimension format.Dimension // byte offset 3
	// Compression is the second-stage compression applied to the payload.
	Compression format.CompressionType // byte offset 4 (low nibble)

	// Rows and Cols are the original shape. A 1-D array has one row.
	Rows uint32 // byte offset 8-11
	Cols uint32 // byte offset 12-15
	// Fingerprint is the xxHash64 of the original array's kind, shape and values.
	Fingerprint uint64 // byte offset 16-23
	// PayloadLength is the number of payload bytes following the header.
	PayloadLength uint32 // byte offset 24-27
	// RawPayloadLength is the payload size before second-stage compression.
	RawPayloadLength uint32 // byte offset 28-31
}

// NewHeader creates a little-endian header for the given codec mode and
// array kind with no second-stage compression.
func NewHeader(mode format.Mode, dim format.Dimension) *Header {
	return &Header{
		Flag:        NewFlag(),
		Mode:        mode,
		Dimension:   dim,
		Compression: format.CompressionNone,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, ErrInvalidHeaderFlags
//     for a bad flag word or an unknown mode, dimension or compression type
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The flag word is always little-endian; it selects the engine for the rest.
	h.Flag.Options = uint16(data[flagOffset]) | (uint16(data[flagOffset+1]) << 8)
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	h.Mode = format.Mode(data[modeOffset])
	h.Dimension = format.Dimension(data[dimensionOffset])
	h.Compression = format.CompressionType(data[compressionOffset] & 0x0F)

	engine := h.Flag.GetEndianEngine()
	h.Rows = engine.Uint32(data[rowsOffset:])
	h.Cols = engine.Uint32(data[colsOffset:])
	h.Fingerprint = engine.Uint64(data[fingerprintOffset:])
	h.PayloadLength = engine.Uint32(data[payloadLenOffset:])
	h.RawPayloadLength = engine.Uint32(data[rawLenOffset:])

	return h.Validate()
}

// Validate checks that every enum field holds a known value.
func (h *Header) Validate() error {
	if !h.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %d", errs.ErrInvalidHeaderFlags, h.Mode)
	}
	if !h.Dimension.IsValid() {
		return fmt.Errorf("%w: unknown dimension %d", errs.ErrInvalidHeaderFlags, h.Dimension)
	}
	if !h.Compression.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionType, h.Compression)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, HeaderSize)...)
	b := dst[start:]

	engine := h.Flag.GetEndianEngine()

	b[flagOffset] = byte(h.Flag.Options)
	b[flagOffset+1] = byte(h.Flag.Options >> 8)
	b[modeOffset] = uint8(h.Mode)
	b[dimensionOffset] = uint8(h.Dimension)
	b[compressionOffset] = uint8(h.Compression) & 0x0F
	engine.PutUint32(b[rowsOffset:], h.Rows)
	engine.PutUint32(b[colsOffset:], h.Cols)
	engine.PutUint64(b[fingerprintOffset:], h.Fingerprint)
	engine.PutUint32(b[payloadLenOffset:], h.PayloadLength)
	engine.PutUint32(b[rawLenOffset:], h.RawPayloadLength)

	return dst
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with the header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsSparseBlob reports whether data starts with a sparse codec header.
func IsSparseBlob(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}

	flag := Flag{Options: uint16(data[flagOffset]) | (uint16(data[flagOffset+1]) << 8)}

	return flag.IsValidMagicNumber()
}
