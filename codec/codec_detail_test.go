package codec

import (
	"testing"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/bitpack"
	"github.com/stretchr/testify/require"
)

// === Coordinate List Tests ===

func TestCoordinateList_Entries(t *testing.T) {
	c := NewCoordinateList()
	input := array.TwoD{Rows: 3, Cols: 3, Values: [][]uint32{
		{5, 5, 5},
		{5, 9, 5},
		{1, 5, 5},
	}}
	require.NoError(t, c.Compress(input))

	require.Equal(t, coordinate{Row: 3, Col: 3, Value: 5}, c.header)
	require.Equal(t, []coordinate{
		{Row: 2, Col: 2, Value: 9},
		{Row: 3, Col: 1, Value: 1},
	}, c.entries)
}

func TestCoordinateList_CorruptCoordinate(t *testing.T) {
	c := NewCoordinateList()
	require.NoError(t, c.Compress(inputOf(t, format.Dim2D, scenario, 2, 7)))

	c.entries[0].Col = 8
	_, err := c.Decompress()
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	require.ErrorIs(t, err, errs.ErrCalculate)
	require.Zero(t, c.Result().DecompressTimeMs)
}

func TestCoordinateList_SelfCheck(t *testing.T) {
	c := NewCoordinateList()
	require.NoError(t, c.Compress(inputOf(t, format.Dim2D, scenario, 2, 7)))

	c.entries[0].Value++
	_, err := c.Decompress()
	require.ErrorIs(t, err, errs.ErrCalculate)
}

// === Run Length Tests ===

func TestRunLength_Runs(t *testing.T) {
	c := NewRunLength()
	require.NoError(t, c.Compress(array.OneD{Values: []uint32{1, 1, 1, 2, 2, 1, 3, 3, 3, 3}}))

	require.Equal(t, []run{{1, 3}, {2, 2}, {1, 1}, {3, 4}}, c.runs)
	require.Equal(t, uint32(8), c.Result().CompressedElementCount)
	require.Equal(t, uint32(32), c.Result().CompressedSizeBytes)
}

func TestRunLength_Invariants(t *testing.T) {
	for _, flat := range [][]uint32{scenario, {4}, {4, 4, 4}, skewed(1, 500, 2, 3)} {
		c := NewRunLength()
		require.NoError(t, c.Compress(array.OneD{Values: flat}))

		var total int
		for i, r := range c.runs {
			total += int(r.Length)
			require.NotZero(t, r.Length)
			if i > 0 {
				require.NotEqual(t, c.runs[i-1].Value, r.Value, "adjacent runs share a value")
			}
		}
		require.Equal(t, len(flat), total)
	}
}

func TestRunLength_CorruptRuns(t *testing.T) {
	c := NewRunLength()
	require.NoError(t, c.Compress(array.OneD{Values: scenario}))

	c.runs[0].Length++
	_, err := c.Decompress()
	require.ErrorIs(t, err, errs.ErrCalculate)
}

// === Bitmap Payload Tests ===

func TestBitmapPayload_Scenario(t *testing.T) {
	c := NewBitmapPayload()
	require.NoError(t, c.Compress(array.OneD{Values: scenario}))

	require.Equal(t, uint32(0), c.mainValue)
	require.Equal(t, uint32(14), c.bitNum)
	require.Len(t, c.bitmap, 2)
	require.Equal(t, []byte{0b0010_0100, 0b0010_0001}, c.bitmap)
	require.Equal(t, []uint32{128, 999, 1024, 8888}, c.payload)
}

func TestBitmapPayload_TwoDReshape(t *testing.T) {
	c := NewBitmapPayload()
	input := inputOf(t, format.Dim2D, scenario, 7, 2)
	require.NoError(t, c.Compress(input))

	out, err := c.Decompress()
	require.NoError(t, err)

	m, ok := out.(array.TwoD)
	require.True(t, ok)
	require.Equal(t, uint32(7), m.Rows)
	require.Equal(t, uint32(2), m.Cols)
	require.True(t, array.Equal(input, m))
}

func TestBitmapPayload_CorruptState(t *testing.T) {
	t.Run("missing payload", func(t *testing.T) {
		c := NewBitmapPayload()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		c.payload = c.payload[:3]
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("unused payload", func(t *testing.T) {
		c := NewBitmapPayload()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		c.payload = append(c.payload, 1)
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrCalculate)
	})

	t.Run("short bitmap", func(t *testing.T) {
		c := NewBitmapPayload()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		c.bitmap = c.bitmap[:1]
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrCalculate)
	})
}

// === Dictionary Tests ===

func TestDictionary_Scenario(t *testing.T) {
	c := NewDictionary()
	require.NoError(t, c.Compress(array.OneD{Values: scenario}))

	require.Equal(t, []uint32{0, 128, 999, 1024, 8888}, c.dict)
	require.Equal(t, uint8(3), c.bitWidth)
	require.Len(t, c.packed, 6)
	require.Equal(t, []byte{0x00, 0x80, 0x80, 0x60, 0x01, 0x00}, c.packed)
}

func TestDictionary_FirstOccurrenceOrder(t *testing.T) {
	c := NewDictionary()
	require.NoError(t, c.Compress(array.OneD{Values: []uint32{9, 3, 9, 1, 3}}))
	require.Equal(t, []uint32{9, 3, 1}, c.dict)
}

func TestDictionary_BitWidth(t *testing.T) {
	for _, d := range []int{1, 2, 3, 4, 5, 8, 9, 16, 17, 100, 256, 257} {
		flat := make([]uint32, 0, d*3)
		for range 3 {
			for v := range d {
				flat = append(flat, uint32(v*7)) //nolint: gosec
			}
		}

		c := NewDictionary()
		require.NoError(t, c.Compress(array.OneD{Values: flat}))
		require.Len(t, c.dict, d)
		require.Equal(t, bitpack.Width(d), c.bitWidth)
		require.Len(t, c.packed, bitpack.ByteLen(len(flat)*int(c.bitWidth)))

		out, err := c.Decompress()
		require.NoError(t, err)
		require.True(t, array.Equal(array.OneD{Values: flat}, out))
	}
}

func TestDictionary_SingleEntry(t *testing.T) {
	c := NewDictionary()
	input := inputOf(t, format.Dim2D, []uint32{4, 4, 4, 4, 4, 4}, 2, 3)
	require.NoError(t, c.Compress(input))

	require.Zero(t, c.bitWidth)
	require.Empty(t, c.packed)
	require.Equal(t, uint32(1+0+4), c.Result().CompressedElementCount)
	require.Equal(t, uint32(0+4+13), c.Result().CompressedSizeBytes)

	out, err := c.Decompress()
	require.NoError(t, err)
	require.True(t, array.Equal(input, out))
}

func TestDictionary_CorruptState(t *testing.T) {
	t.Run("truncated packed buffer", func(t *testing.T) {
		c := NewDictionary()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		c.packed = c.packed[:4]
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		require.ErrorIs(t, err, errs.ErrCalculate)
	})

	t.Run("index beyond dictionary", func(t *testing.T) {
		c := NewDictionary()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		// First index becomes 0b111 = 7 >= 5.
		c.packed[0] |= 0xE0
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("wrong dictionary value", func(t *testing.T) {
		c := NewDictionary()
		require.NoError(t, c.Compress(array.OneD{Values: scenario}))

		c.dict[1] = 129
		_, err := c.Decompress()
		require.ErrorIs(t, err, errs.ErrCalculate)
		require.NotErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

// === CSR / CSC Tests ===

func TestCSR_Layout(t *testing.T) {
	input := array.TwoD{Rows: 3, Cols: 4, Values: [][]uint32{
		{0, 7, 0, 0},
		{0, 0, 0, 0},
		{3, 0, 0, 8},
	}}

	c := NewCSR()
	require.NoError(t, c.Compress(input))
	require.Equal(t, uint32(0), c.mainValue)
	require.Equal(t, []uint32{7, 3, 8}, c.values)
	require.Equal(t, []uint32{1, 0, 3}, c.index)
	require.Equal(t, []uint32{0, 1, 1, 3}, c.offsets)
}

func TestCSC_Layout(t *testing.T) {
	input := array.TwoD{Rows: 3, Cols: 4, Values: [][]uint32{
		{0, 7, 0, 0},
		{0, 0, 0, 0},
		{3, 0, 0, 8},
	}}

	c := NewCSC()
	require.NoError(t, c.Compress(input))
	require.Equal(t, []uint32{3, 7, 8}, c.values)
	require.Equal(t, []uint32{2, 0, 2}, c.index)
	require.Equal(t, []uint32{0, 1, 2, 2, 3}, c.offsets)

	out, err := c.Decompress()
	require.NoError(t, err)
	require.True(t, array.Equal(input, out))
}

func TestSparse_CorruptState(t *testing.T) {
	for _, c := range []*sparseLayout{&NewCSR().sparseLayout, &NewCSC().sparseLayout} {
		t.Run(c.Mode().String()+"/index", func(t *testing.T) {
			require.NoError(t, c.Compress(inputOf(t, format.Dim2D, scenario, 2, 7)))

			c.index[0] = 100
			_, err := c.Decompress()
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		})

		t.Run(c.Mode().String()+"/offsets", func(t *testing.T) {
			require.NoError(t, c.Compress(inputOf(t, format.Dim2D, scenario, 2, 7)))

			c.offsets[len(c.offsets)-1]++
			_, err := c.Decompress()
			require.ErrorIs(t, err, errs.ErrCalculate)
		})
	}
}
