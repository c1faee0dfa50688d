// Package errs defines the sentinel errors shared by every sparsa package.
//
// Errors are returned wrapped with context (fmt.Errorf with %w), so callers
// should match them with errors.Is rather than by equality.
package errs

import (
	"errors"
	"fmt"
)

// Codec taxonomy.
var (
	// ErrInputEmpty is returned when an input array, or a codec's compressed state, is empty.
	ErrInputEmpty = errors.New("input is empty")
	// ErrParamInvalid is returned for malformed arguments such as an impossible reshape.
	ErrParamInvalid = errors.New("invalid parameter")
	// ErrUnsupportedDimension is returned when a codec receives an array kind it cannot encode.
	ErrUnsupportedDimension = errors.New("unsupported dimension")
	// ErrCalculate is returned when a round-trip self-check fails or decoding meets invalid data.
	ErrCalculate = errors.New("calculation error")
	// ErrIndexOutOfRange is returned when a decoded index exceeds the known bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Derived codec errors.
var (
	// ErrNotCompressed is returned by Decompress before a successful Compress.
	ErrNotCompressed = fmt.Errorf("%w: no compressed data", ErrInputEmpty)
	// ErrChecksumMismatch is returned when a restored codec decodes to data whose fingerprint differs.
	ErrChecksumMismatch = fmt.Errorf("%w: fingerprint mismatch", ErrCalculate)
	// ErrUnknownAlgorithm is returned when a registry or mode lookup fails.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Wire format errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidHeaderFlags     = errors.New("invalid header flags")
	ErrInvalidPayload         = errors.New("invalid payload")
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
