package codec

import (
	"testing"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T, src Codec, engine endian.EndianEngine) Codec {
	t.Helper()

	pm, ok := src.(PayloadMarshaler)
	require.True(t, ok)

	meta, err := pm.Meta()
	require.NoError(t, err)

	payload, err := pm.AppendPayload(nil, engine)
	require.NoError(t, err)

	dst, err := New(src.Mode())
	require.NoError(t, err)
	require.NoError(t, dst.(PayloadMarshaler).LoadPayload(meta, payload, engine))

	return dst
}

func TestPayload_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for _, mode := range format.Modes() {
		for _, kind := range supportedKinds(mode) {
			for name, engine := range engines {
				t.Run(mode.String()+"/"+kind.String()+"/"+name, func(t *testing.T) {
					input := inputOf(t, kind, skewed(6, 9, 0, 11), 6, 9)

					src, err := New(mode)
					require.NoError(t, err)
					require.NoError(t, src.Compress(input))

					dst := restore(t, src, engine)

					out, err := dst.Decompress()
					require.NoError(t, err)
					require.True(t, array.Equal(input, out))

					want, got := src.Result(), dst.Result()
					require.Equal(t, want.CompressedSizeBytes, got.CompressedSizeBytes)
					require.Equal(t, want.CompressedElementCount, got.CompressedElementCount)
					require.Equal(t, want.OriginSizeBytes, got.OriginSizeBytes)
					require.Zero(t, got.CompressTimeMs)
				})
			}
		}
	}
}

func TestPayload_MetaBeforeCompress(t *testing.T) {
	_, err := NewDense().Meta()
	require.ErrorIs(t, err, errs.ErrNotCompressed)

	_, err = NewDense().AppendPayload(nil, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrNotCompressed)
}

func TestPayload_MetaFingerprint(t *testing.T) {
	input := inputOf(t, format.Dim2D, scenario, 2, 7)

	c := NewCSR()
	require.NoError(t, c.Compress(input))

	meta, err := c.Meta()
	require.NoError(t, err)
	require.Equal(t, format.ModeCSR, meta.Mode)
	require.Equal(t, format.Dim2D, meta.Kind)
	require.Equal(t, 14, meta.Count())
	require.Equal(t, array.Fingerprint(input), meta.Fingerprint)
}

func TestPayload_RestoredSelfCheck(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	src := NewBitmapPayload()
	require.NoError(t, src.Compress(array.OneD{Values: scenario}))

	dst, ok := restore(t, src, engine).(*BitmapPayload)
	require.True(t, ok)

	// A value change that keeps the layout consistent is caught by the fingerprint.
	dst.payload[0] = 127
	_, err := dst.Decompress()
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	require.ErrorIs(t, err, errs.ErrCalculate)
}

func TestPayload_LoadRejectsShapeMismatch(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	input := inputOf(t, format.Dim2D, scenario, 2, 7)

	for _, mode := range []format.Mode{
		format.ModeCoordinateList,
		format.ModeBitmapPayload,
		format.ModeDictionary,
		format.ModeCSR,
		format.ModeCSC,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			src, err := New(mode)
			require.NoError(t, err)
			require.NoError(t, src.Compress(input))

			pm := src.(PayloadMarshaler)
			meta, err := pm.Meta()
			require.NoError(t, err)
			payload, err := pm.AppendPayload(nil, engine)
			require.NoError(t, err)

			// Same payload, but the header claims a much larger array.
			meta.Rows, meta.Cols = 2000, 7000

			dst, err := New(mode)
			require.NoError(t, err)
			err = dst.(PayloadMarshaler).LoadPayload(meta, payload, engine)
			require.ErrorIs(t, err, errs.ErrInvalidPayload)

			_, err = dst.Decompress()
			require.ErrorIs(t, err, errs.ErrNotCompressed)
		})
	}

	t.Run("RunLength", func(t *testing.T) {
		src := NewRunLength()
		require.NoError(t, src.Compress(array.OneD{Values: scenario}))

		meta, err := src.Meta()
		require.NoError(t, err)
		payload, err := src.AppendPayload(nil, engine)
		require.NoError(t, err)

		meta.Cols = 1 << 20
		err = NewRunLength().LoadPayload(meta, payload, engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestPayload_LoadErrors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	src := NewDense()
	require.NoError(t, src.Compress(array.OneD{Values: scenario}))

	meta, err := src.Meta()
	require.NoError(t, err)
	payload, err := src.AppendPayload(nil, engine)
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		err := NewDense().LoadPayload(meta, payload[:len(payload)-1], engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		err := NewDense().LoadPayload(meta, append(payload, 0), engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("wrong mode", func(t *testing.T) {
		err := NewDictionary().LoadPayload(meta, payload, engine)
		require.ErrorIs(t, err, errs.ErrParamInvalid)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		m := meta
		m.Mode = format.ModeCSR
		err := NewCSR().LoadPayload(m, payload, engine)
		require.ErrorIs(t, err, errs.ErrUnsupportedDimension)
	})

	t.Run("count mismatch", func(t *testing.T) {
		m := meta
		m.Cols = 15
		err := NewDense().LoadPayload(m, payload, engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("huge declared length", func(t *testing.T) {
		bad := engine.AppendUint32(nil, 0xFFFFFFFF)
		err := NewDense().LoadPayload(meta, bad, engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("failed load leaves codec unusable", func(t *testing.T) {
		c := NewDense()
		require.Error(t, c.LoadPayload(meta, payload[:3], engine))

		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrNotCompressed)
	})
}
