// Package codec implements the sparse array codec family and its registry.
//
// Every codec satisfies the same contract: Compress takes an array.Array and
// builds a private compressed representation, Decompress rebuilds the array
// from that representation and Result reports sizes and timings.
//
// Available codecs:
//   - Dense: identity copy, the size and speed baseline
//   - CoordinateList: 1-based (row, col, value) triples for non-main cells (2-D only)
//   - RunLength: (value, length) runs (1-D only)
//   - BitmapPayload: LSB-first presence bitmap plus the non-main values
//   - Dictionary: first-occurrence dictionary plus MSB-first bit-packed indices
//   - CSR / CSC: compressed sparse rows / columns (2-D only)
//
// Decompress is self-verifying. The rebuilt array is compared element by
// element against the retained input (or against the stored fingerprint for a
// codec restored with LoadPayload) and a mismatch fails with errs.ErrCalculate
// instead of returning wrong data.
//
// A codec instance is single-use per input and is not safe for concurrent use.
// Compressing a second input replaces all prior state.
package codec

import (
	"fmt"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// Codec is the uniform compress/decompress/result contract.
type Codec interface {
	// Mode returns the codec's identity.
	Mode() format.Mode

	// Compress encodes input into the codec's private representation.
	//
	// Returns:
	//   - errs.ErrInputEmpty: input is nil or has no elements
	//   - errs.ErrUnsupportedDimension: the codec does not accept input.Kind()
	//   - errs.ErrParamInvalid: a TwoD whose rows disagree with its declared shape
	Compress(input array.Array) error

	// Decompress rebuilds the array passed to the last successful Compress.
	//
	// The returned array has the same kind and shape as the original input.
	//
	// Returns:
	//   - errs.ErrNotCompressed: no compressed state exists
	//   - errs.ErrCalculate: the compressed state is structurally invalid or the
	//     rebuilt array differs from the original
	//   - errs.ErrIndexOutOfRange: a decoded index exceeds its bounds (also wraps ErrCalculate)
	Decompress() (array.Array, error)

	// Result returns the measurements of the last run. All fields are zero
	// before a successful Compress and DecompressTimeMs stays zero until
	// Decompress succeeds.
	Result() Result
}

// Factory produces a fresh codec instance.
type Factory func() Codec

// Meta describes the original array of a compressed codec.
type Meta struct {
	Mode        format.Mode
	Kind        format.Dimension
	Rows        uint32
	Cols        uint32
	Fingerprint uint64
}

// Count returns the number of elements in the original array.
func (m Meta) Count() int {
	return int(m.Rows) * int(m.Cols)
}

// PayloadMarshaler is implemented by codecs whose compressed representation can
// be persisted. All built-in codecs implement it.
type PayloadMarshaler interface {
	// Meta returns the description of the compressed array.
	// It fails with errs.ErrNotCompressed before a successful Compress.
	Meta() (Meta, error)

	// AppendPayload appends the compressed representation to dst. Every integer
	// is a uint32 in engine's byte order and every variable-length field is
	// prefixed by its element count.
	AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error)

	// LoadPayload replaces the codec's state with a payload produced by
	// AppendPayload. The restored codec verifies Decompress against
	// meta.Fingerprint since the original array is not available.
	LoadPayload(meta Meta, payload []byte, engine endian.EndianEngine) error
}

var (
	_ Codec            = (*Dense)(nil)
	_ Codec            = (*CoordinateList)(nil)
	_ Codec            = (*RunLength)(nil)
	_ Codec            = (*BitmapPayload)(nil)
	_ Codec            = (*Dictionary)(nil)
	_ Codec            = (*CSR)(nil)
	_ Codec            = (*CSC)(nil)
	_ PayloadMarshaler = (*Dense)(nil)
	_ PayloadMarshaler = (*CoordinateList)(nil)
	_ PayloadMarshaler = (*RunLength)(nil)
	_ PayloadMarshaler = (*BitmapPayload)(nil)
	_ PayloadMarshaler = (*Dictionary)(nil)
	_ PayloadMarshaler = (*CSR)(nil)
	_ PayloadMarshaler = (*CSC)(nil)
)

// New creates a fresh built-in codec for mode.
//
// Parameters:
//   - mode: One of the format.Mode constants
//
// Returns:
//   - Codec: New codec instance
//   - error: errs.ErrUnknownAlgorithm for an unknown mode
func New(mode format.Mode) (Codec, error) {
	switch mode {
	case format.ModeDense:
		return NewDense(), nil
	case format.ModeCoordinateList:
		return NewCoordinateList(), nil
	case format.ModeRunLength:
		return NewRunLength(), nil
	case format.ModeBitmapPayload:
		return NewBitmapPayload(), nil
	case format.ModeDictionary:
		return NewDictionary(), nil
	case format.ModeCSR:
		return NewCSR(), nil
	case format.ModeCSC:
		return NewCSC(), nil
	default:
		return nil, fmt.Errorf("%w: mode %d", errs.ErrUnknownAlgorithm, mode)
	}
}
