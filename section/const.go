package section

const (
	// Bit masks of the flag word
	ReservedLowMask  = 0x0001 // Mask for reserved bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSparseV1Opt is the magic number of a serialized sparse array codec (bits 4-15).
	MagicSparseV1Opt = 0x5A10
)

const (
	HeaderSize = 32 // fixed header size in bytes

	// byte offsets of the header fields
	flagOffset        = 0
	modeOffset        = 2
	dimensionOffset   = 3
	compressionOffset = 4
	rowsOffset        = 8
	colsOffset        = 12
	fingerprintOffset = 16
	payloadLenOffset  = 24
	rawLenOffset      = 28
)
