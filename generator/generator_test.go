package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/loader"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	for _, p := range []Pattern{PatternDiagonal, PatternBanded, PatternBlock} {
		parsed, err := ParsePattern(p.String())
		require.NoError(t, err)
		require.Equal(t, p, parsed)
	}

	_, err := ParsePattern("random")
	require.ErrorIs(t, err, errs.ErrParamInvalid)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"zero cols", func(c *Config) { c.Cols = 0 }},
		{"negative sparsity", func(c *Config) { c.Sparsity = -0.1 }},
		{"sparsity one", func(c *Config) { c.Sparsity = 1 }},
		{"min above max", func(c *Config) { c.MinValue = 10; c.MaxValue = 5 }},
		{"unknown pattern", func(c *Config) { c.Pattern = 0 }},
	}

	require.NoError(t, DefaultConfig(3, 3).Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(3, 3)
			tt.modify(&cfg)

			_, err := Generate(cfg)
			require.ErrorIs(t, err, errs.ErrParamInvalid)
		})
	}
}

func TestGenerate_Diagonal(t *testing.T) {
	cfg := DefaultConfig(4, 6)
	cfg.MainValue = 7
	cfg.MinValue = 100
	cfg.MaxValue = 200

	m, err := Generate(cfg)
	require.NoError(t, err)
	require.NoError(t, array.Validate(m))

	for i, row := range m.Values {
		for j, v := range row {
			if i == j {
				require.GreaterOrEqual(t, v, uint32(100))
				require.LessOrEqual(t, v, uint32(200))
			} else {
				require.Equal(t, uint32(7), v)
			}
		}
	}
}

func TestGenerate_Banded(t *testing.T) {
	cfg := DefaultConfig(20, 20)
	cfg.Pattern = PatternBanded
	cfg.Sparsity = 0.75 // bandwidth 5, half-width 2
	cfg.MinValue = 1

	m, err := Generate(cfg)
	require.NoError(t, err)

	for i, row := range m.Values {
		for j, v := range row {
			d := i - j
			if d < 0 {
				d = -d
			}
			if d <= 2 {
				require.NotZero(t, v, "cell (%d, %d)", i, j)
			} else {
				require.Zero(t, v, "cell (%d, %d)", i, j)
			}
		}
	}
}

func TestGenerate_Block(t *testing.T) {
	cfg := DefaultConfig(30, 30)
	cfg.Pattern = PatternBlock

	m, err := Generate(cfg)
	require.NoError(t, err)

	require.NotZero(t, m.Values[0][0])
	require.NotZero(t, m.Values[9][9])
	require.Zero(t, m.Values[0][10])
	require.Zero(t, m.Values[10][0])
	require.NotZero(t, m.Values[10][20])
	require.NotZero(t, m.Values[29][19])
}

func TestGenerate_SingleValueRange(t *testing.T) {
	cfg := DefaultConfig(3, 3)
	cfg.MinValue = 42
	cfg.MaxValue = 42

	m, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, uint32(42), m.Values[1][1])
}

func TestGenerate_Reproducible(t *testing.T) {
	cfg := DefaultConfig(50, 50)
	cfg.Pattern = PatternBlock
	cfg.Seed = 99

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)
	require.True(t, array.Equal(a, b))
}

func TestWriteText_LoaderRoundTrip(t *testing.T) {
	cfg := DefaultConfig(12, 15)
	cfg.Pattern = PatternBanded
	cfg.Seed = 3

	m, err := Generate(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, m))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	require.Len(t, strings.Fields(lines[0]), 15)

	values, stats, err := loader.Load(&buf)
	require.NoError(t, err)
	require.Zero(t, stats.Skipped)

	loaded, err := array.Reshape(values, 12, 15)
	require.NoError(t, err)
	require.True(t, array.Equal(m, loaded))
}
