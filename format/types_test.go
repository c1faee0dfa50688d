package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMode_StringAndParse(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			require.True(t, m.IsValid())

			parsed, err := ParseMode(m.String())
			require.NoError(t, err)
			require.Equal(t, m, parsed)
		})
	}

	require.Equal(t, "Unknown", Mode(0).String())
	require.False(t, Mode(0x8).IsValid())

	_, err := ParseMode("Unknown")
	require.Error(t, err)
}

func TestModes_ReturnsCopy(t *testing.T) {
	modes := Modes()
	require.Len(t, modes, 7)

	modes[0] = ModeCSC
	require.Equal(t, ModeDense, Modes()[0])
}

func TestDimension_String(t *testing.T) {
	require.Equal(t, "1D", Dim1D.String())
	require.Equal(t, "2D", Dim2D.String())
	require.Equal(t, "Unknown", Dimension(0).String())
	require.False(t, Dimension(3).IsValid())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
	}{
		{"", CompressionNone},
		{"None", CompressionNone},
		{"zstd", CompressionZstd},
		{"S2", CompressionS2},
		{"lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompressionType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.True(t, got.IsValid())
		})
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
	require.Equal(t, "Unknown", CompressionType(0).String())
}
