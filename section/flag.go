package section

import (
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
)

// Flag is the packed option word at the start of the header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved and must be 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are the magic number 0x5A10 (0b0101_1010_0001_0000).
	Options uint16
}

// NewFlag creates a little-endian flag carrying the magic number.
func NewFlag() Flag {
	return Flag{Options: MagicSparseV1Opt}
}

// IsLittleEndian returns whether the data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicSparseV1Opt
}

// Validate checks the magic number and that reserved bits are clear.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidHeaderFlags
	}

	if f.Options&(ReservedLowMask|ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
