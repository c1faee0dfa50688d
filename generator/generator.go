// Package generator builds synthetic sparse matrices for exercising the codecs.
//
// Three fill patterns are supported. Cells outside the pattern hold the main
// value; cells inside it are drawn uniformly from [MinValue, MaxValue].
//   - diagonal: the main diagonal
//   - banded: cells with |row-col| <= bandwidth/2, bandwidth = (1-Sparsity)*Cols
//   - block: 10×10 blocks where (row/10 + col/10) % 3 == 0
package generator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/errs"
)

// Pattern selects which cells receive random values.
type Pattern uint8

const (
	PatternDiagonal Pattern = iota + 1
	PatternBanded
	PatternBlock
)

const blockSize = 10

func (p Pattern) String() string {
	switch p {
	case PatternDiagonal:
		return "diagonal"
	case PatternBanded:
		return "banded"
	case PatternBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParsePattern converts "diagonal", "banded" or "block" into a Pattern.
func ParsePattern(name string) (Pattern, error) {
	switch name {
	case "diagonal":
		return PatternDiagonal, nil
	case "banded":
		return PatternBanded, nil
	case "block":
		return PatternBlock, nil
	default:
		return 0, fmt.Errorf("%w: unsupported pattern %q", errs.ErrParamInvalid, name)
	}
}

// Config describes the matrix to generate.
type Config struct {
	Rows     uint32
	Cols     uint32
	Pattern  Pattern
	Sparsity float64 // in [0, 1); only the banded pattern uses it
	MinValue uint32
	MaxValue uint32
	// MainValue fills every cell outside the pattern.
	MainValue uint32
	// Seed makes the output reproducible.
	Seed int64
}

// DefaultConfig returns a rows × cols diagonal configuration with sparsity
// 0.9, values in [1, 100] and main value 0.
func DefaultConfig(rows, cols uint32) Config {
	return Config{
		Rows:     rows,
		Cols:     cols,
		Pattern:  PatternDiagonal,
		Sparsity: 0.9,
		MinValue: 1,
		MaxValue: 100,
	}
}

// Validate checks the configuration.
//
// Returns:
//   - errs.ErrParamInvalid: a zero dimension, sparsity outside [0, 1),
//     MinValue > MaxValue or an unknown pattern
func (c Config) Validate() error {
	if c.Rows == 0 || c.Cols == 0 {
		return fmt.Errorf("%w: rows and columns must be positive", errs.ErrParamInvalid)
	}
	if c.Sparsity < 0 || c.Sparsity >= 1 {
		return fmt.Errorf("%w: sparsity %g not in [0, 1)", errs.ErrParamInvalid, c.Sparsity)
	}
	if c.MinValue > c.MaxValue {
		return fmt.Errorf("%w: min value %d greater than max value %d", errs.ErrParamInvalid, c.MinValue, c.MaxValue)
	}
	if c.Pattern < PatternDiagonal || c.Pattern > PatternBlock {
		return fmt.Errorf("%w: unsupported pattern %d", errs.ErrParamInvalid, c.Pattern)
	}

	return nil
}

// Generate builds a matrix according to cfg.
func Generate(cfg Config) (array.TwoD, error) {
	if err := cfg.Validate(); err != nil {
		return array.TwoD{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint: gosec
	span := int64(cfg.MaxValue) - int64(cfg.MinValue) + 1
	draw := func() uint32 {
		return cfg.MinValue + uint32(rng.Int63n(span)) //nolint: gosec
	}

	inPattern := patternFunc(cfg)

	m := array.Filled(cfg.Rows, cfg.Cols, cfg.MainValue)
	for i, row := range m.Values {
		for j := range row {
			if inPattern(i, j) {
				row[j] = draw()
			}
		}
	}

	return m, nil
}

func patternFunc(cfg Config) func(i, j int) bool {
	switch cfg.Pattern {
	case PatternBanded:
		half := int((1.0-cfg.Sparsity)*float64(cfg.Cols)) / 2
		return func(i, j int) bool {
			d := i - j
			if d < 0 {
				d = -d
			}

			return d <= half
		}
	case PatternBlock:
		return func(i, j int) bool {
			return (i/blockSize+j/blockSize)%3 == 0
		}
	default:
		return func(i, j int) bool { return i == j }
	}
}

// WriteText writes m as one line per row with space-separated values, the
// format read by the loader package.
func WriteText(w io.Writer, m array.TwoD) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)

	for _, row := range m.Values {
		for j, v := range row {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			buf = strconv.AppendUint(buf[:0], uint64(v), 10)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
