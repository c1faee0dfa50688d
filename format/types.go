package format

import "fmt"

type (
	Dimension       uint8
	Mode            uint8
	CompressionType uint8
)

const (
	Dim1D Dimension = 0x1 // Dim1D represents a flat sequence of values.
	Dim2D Dimension = 0x2 // Dim2D represents a row-major matrix.
)

const (
	ModeDense          Mode = 0x1 // ModeDense stores the array as-is.
	ModeCoordinateList Mode = 0x2 // ModeCoordinateList stores (row, col, value) triples.
	ModeRunLength      Mode = 0x3 // ModeRunLength stores (value, length) runs.
	ModeBitmapPayload  Mode = 0x4 // ModeBitmapPayload stores a presence bitmap plus non-main values.
	ModeDictionary     Mode = 0x5 // ModeDictionary stores a value dictionary plus bit-packed indices.
	ModeCSR            Mode = 0x6 // ModeCSR stores compressed sparse rows.
	ModeCSC            Mode = 0x7 // ModeCSC stores compressed sparse columns.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var allModes = []Mode{
	ModeDense,
	ModeCoordinateList,
	ModeRunLength,
	ModeBitmapPayload,
	ModeDictionary,
	ModeCSR,
	ModeCSC,
}

// Modes returns every known codec mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)

	return out
}

func (d Dimension) String() string {
	switch d {
	case Dim1D:
		return "1D"
	case Dim2D:
		return "2D"
	default:
		return "Unknown"
	}
}

// IsValid reports whether d is one of the declared dimensions.
func (d Dimension) IsValid() bool {
	return d == Dim1D || d == Dim2D
}

// String returns the registry name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDense:
		return "Dense"
	case ModeCoordinateList:
		return "CoordinateList"
	case ModeRunLength:
		return "RunLength"
	case ModeBitmapPayload:
		return "BitmapPayload"
	case ModeDictionary:
		return "Dictionary"
	case ModeCSR:
		return "CSR"
	case ModeCSC:
		return "CSC"
	default:
		return "Unknown"
	}
}

// IsValid reports whether m is one of the declared modes.
func (m Mode) IsValid() bool {
	return m >= ModeDense && m <= ModeCSC
}

// ParseMode converts a registry name back into a Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range allModes {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown mode: %q", name)
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the declared compression types.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompressionType converts a case-sensitive name ("None", "Zstd", "S2", "LZ4")
// into a CompressionType. The lower-case forms are accepted as well.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "None", "none", "":
		return CompressionNone, nil
	case "Zstd", "zstd":
		return CompressionZstd, nil
	case "S2", "s2":
		return CompressionS2, nil
	case "LZ4", "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
