package section

import (
	"testing"

	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/stretchr/testify/require"
)

func newTestHeader() *Header {
	h := NewHeader(format.ModeDictionary, format.Dim2D)
	h.Compression = format.CompressionZstd
	h.Rows = 40
	h.Cols = 25
	h.Fingerprint = 0x0123456789ABCDEF
	h.PayloadLength = 300
	h.RawPayloadLength = 1200

	return h
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(format.ModeCSR, format.Dim2D)

	require.Equal(t, format.ModeCSR, h.Mode)
	require.Equal(t, format.Dim2D, h.Dimension)
	require.Equal(t, format.CompressionNone, h.Compression)
	require.True(t, h.Flag.IsValidMagicNumber())
	require.True(t, h.Flag.IsLittleEndian())
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := newTestHeader()
		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed := &Header{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *original, *parsed)
	})

	t.Run("Big endian", func(t *testing.T) {
		original := newTestHeader()
		original.Flag.WithBigEndian()
		data := original.Bytes()

		// Flag word stays little-endian.
		require.Equal(t, byte(0x12), data[0])
		require.Equal(t, byte(0x5A), data[1])
		// Rows are big-endian.
		require.Equal(t, []byte{0, 0, 0, 40}, data[8:12])

		parsed := &Header{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *original, *parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &Header{}
		err := header.Parse([]byte{1, 2, 3})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := newTestHeader().Bytes()
		data[1] = 0xEA

		err := (&Header{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Reserved bits set", func(t *testing.T) {
		data := newTestHeader().Bytes()
		data[0] |= 0x04

		err := (&Header{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		data := newTestHeader().Bytes()
		data[2] = 0x0F

		err := (&Header{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown dimension", func(t *testing.T) {
		data := newTestHeader().Bytes()
		data[3] = 3

		err := (&Header{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		data := newTestHeader().Bytes()
		data[4] = 9

		err := (&Header{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
	})
}

func TestHeader_AppendTo(t *testing.T) {
	h := newTestHeader()
	prefix := []byte{0xAA, 0xBB}

	out := h.AppendTo(prefix)
	require.Len(t, out, 2+HeaderSize)
	require.Equal(t, prefix, out[:2])
	require.Equal(t, h.Bytes(), out[2:])
}

func TestFlag_Endianness(t *testing.T) {
	t.Run("Little endian", func(t *testing.T) {
		flag := NewFlag()
		flag.WithLittleEndian()

		require.Equal(t, endian.GetLittleEndianEngine(), flag.GetEndianEngine())
		require.NoError(t, flag.Validate())
	})

	t.Run("Big endian", func(t *testing.T) {
		flag := NewFlag()
		flag.WithBigEndian()

		require.True(t, flag.IsBigEndian())
		require.Equal(t, endian.GetBigEndianEngine(), flag.GetEndianEngine())
		require.Equal(t, uint16(MagicSparseV1Opt), flag.GetMagicNumber())
		require.NoError(t, flag.Validate())
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("Extra data ignored", func(t *testing.T) {
		original := newTestHeader()
		data := append(original.Bytes(), []byte{1, 2, 3, 4, 5}...)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, *original, parsed)
	})

	t.Run("Too short", func(t *testing.T) {
		_, err := ParseHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

func TestIsSparseBlob(t *testing.T) {
	require.True(t, IsSparseBlob(newTestHeader().Bytes()))
	require.False(t, IsSparseBlob(make([]byte, HeaderSize)))
	require.False(t, IsSparseBlob([]byte{0x10, 0x5A}))
	require.False(t, IsSparseBlob(nil))
}
