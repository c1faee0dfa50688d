package wire

import (
	"fmt"
	"math"

	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/internal/options"
)

// DefaultMaxElements is the largest array Unmarshal restores unless
// WithMaxElements says otherwise: 16M elements, 64 MiB once decompressed.
const DefaultMaxElements = 1 << 24

// maxPayloadBytesPerElement bounds the raw payload of any built-in codec per
// array element (CoordinateList stores 12 bytes per cell plus fixed fields).
const maxPayloadBytesPerElement = 16

// maxPayloadOverhead covers the fixed fields of every built-in payload.
const maxPayloadOverhead = 64

// maxRawPayload returns the largest raw payload a valid blob of count
// elements can carry.
func maxRawPayload(count uint64) uint64 {
	if count > (math.MaxUint64-maxPayloadOverhead)/maxPayloadBytesPerElement {
		return math.MaxUint64
	}

	return count*maxPayloadBytesPerElement + maxPayloadOverhead
}

// DecoderConfig holds the settings used by Unmarshal.
type DecoderConfig struct {
	maxElements uint64
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{maxElements: DefaultMaxElements}
}

// DecoderOption represents a functional option for configuring Unmarshal.
type DecoderOption = options.Option[*DecoderConfig]

// WithMaxElements sets the largest rows × cols Unmarshal accepts. Headers
// declaring more are rejected before any payload is decompressed.
func WithMaxElements(n uint64) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n == 0 {
			return fmt.Errorf("%w: max elements must be positive", errs.ErrParamInvalid)
		}
		c.maxElements = n

		return nil
	})
}
