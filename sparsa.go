// Package sparsa provides a family of codecs for sparse arrays of uint32 values.
//
// Every codec implements the same contract: Compress an array, Decompress it
// back (the decoded array is verified against the original), and report size
// and timing statistics through Result.
//
// # Codecs
//
//   - Dense: the array as-is, the baseline
//   - CoordinateList: (row, col, value) triples for non-main cells, 2-D only
//   - RunLength: (value, length) runs, 1-D only
//   - BitmapPayload: a presence bitmap plus the non-main values
//   - Dictionary: distinct values plus bit-packed indices
//   - CSR / CSC: compressed sparse rows / columns, 2-D only
//
// # Basic Usage
//
//	m := array.TwoD{Rows: 2, Cols: 3, Values: [][]uint32{{0, 0, 7}, {0, 9, 0}}}
//
//	c, _ := sparsa.Compress("CSR", m)
//	fmt.Println(c.Result().CompressionRatio)
//
//	data, _ := sparsa.Encode(c, wire.WithCompression(format.CompressionZstd))
//	decoded, _ := sparsa.Decode(data)
//
// Comparing all codecs on one input:
//
//	report, _ := sparsa.Analyze(m)
//	report.WriteTable(os.Stdout)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec, wire
// and analyzer packages backed by the default registry. Use those packages
// directly for custom registries or finer control.
package sparsa

import (
	"fmt"

	"github.com/arloliu/sparsa/analyzer"
	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/wire"
)

// Algorithms returns the names of every codec in the default registry, sorted.
func Algorithms() []string {
	return codec.DefaultRegistry().ListAlgorithms()
}

// NewCodec creates a fresh codec from the default registry.
//
// Returns:
//   - codec.Codec: New codec instance
//   - error: errs.ErrUnknownAlgorithm if name is not registered
func NewCodec(name string) (codec.Codec, error) {
	c, ok := codec.DefaultRegistry().Create(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownAlgorithm, name)
	}

	return c, nil
}

// Compress creates the named codec and compresses input with it.
//
// Returns:
//   - codec.Codec: Compressed codec, ready for Decompress or Encode
//   - error: Lookup or compression errors
func Compress(name string, input array.Array) (codec.Codec, error) {
	c, err := NewCodec(name)
	if err != nil {
		return nil, err
	}

	if err := c.Compress(input); err != nil {
		return nil, err
	}

	return c, nil
}

// Encode serializes a compressed codec into the wire format.
func Encode(c codec.Codec, opts ...wire.EncoderOption) ([]byte, error) {
	return wire.Marshal(c, opts...)
}

// Decode restores a codec from the wire format and decompresses it.
//
// The decoded array is checked against the fingerprint stored in the header.
// Arrays above wire.DefaultMaxElements need wire.WithMaxElements.
func Decode(data []byte, opts ...wire.DecoderOption) (array.Array, error) {
	c, err := wire.Unmarshal(data, opts...)
	if err != nil {
		return nil, err
	}

	return c.Decompress()
}

// Analyze runs every codec of the default registry against input.
func Analyze(input array.Array, opts ...analyzer.Option) (analyzer.Report, error) {
	a, err := analyzer.New(opts...)
	if err != nil {
		return analyzer.Report{}, err
	}

	return a.Run(input)
}
