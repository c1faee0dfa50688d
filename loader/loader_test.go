package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        []uint32
		wantSkipped int
	}{
		{"spaces", "1 2 3", []uint32{1, 2, 3}, 0},
		{"commas", "1,2,3", []uint32{1, 2, 3}, 0},
		{"mixed", " 0,\t0 ,128\n0\r\n999,,  ", []uint32{0, 0, 128, 0, 999}, 0},
		{"rows", "1 2\n3 4\n", []uint32{1, 2, 3, 4}, 0},
		{"max uint32", "4294967295", []uint32{4294967295}, 0},
		{"overflow", "4294967296 5", []uint32{5}, 1},
		{"negative", "-1 5", []uint32{5}, 1},
		{"garbage", "7 abc 8 1.5 9", []uint32{7, 8, 9}, 2},
		{"empty", "", []uint32{}, 0},
		{"only separators", " ,\n, ", []uint32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, stats, err := Load(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, values)
			require.Equal(t, tt.wantSkipped, stats.Skipped)
			require.Equal(t, len(tt.want)+tt.wantSkipped, stats.Tokens)
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	var warnings bytes.Buffer

	values, stats, err := Load(strings.NewReader("1 x 2 y"), WithWarnings(&warnings))
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, values)
	require.Equal(t, 2, stats.Skipped)

	lines := strings.Split(strings.TrimSpace(warnings.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"x"`)
	require.Contains(t, lines[1], `"y"`)
}

func TestLoad_NilWarningsWriter(t *testing.T) {
	values, _, err := Load(strings.NewReader("bad 3"), WithWarnings(nil))
	require.NoError(t, err)
	require.Equal(t, []uint32{3}, values)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "array.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 0 128\n0 0 999\n"), 0o600))

	values, stats, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 128, 0, 0, 999}, values)
	require.Equal(t, 6, stats.Tokens)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
