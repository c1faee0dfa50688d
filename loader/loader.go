// Package loader reads flat uint32 arrays from text.
//
// Tokens are separated by any mix of whitespace and commas. A token that is
// not a base-10 unsigned 32-bit integer is skipped and reported to the
// configured warning writer; it never aborts the load.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/arloliu/sparsa/internal/options"
)

// maxTokenSize bounds a single token; longer runs of non-separator bytes fail the load.
const maxTokenSize = 1024 * 1024

// Stats summarizes a load.
type Stats struct {
	// Tokens is the number of tokens read, valid or not.
	Tokens int
	// Skipped is the number of malformed tokens.
	Skipped int
}

// Config holds the loader settings.
type Config struct {
	warnings io.Writer
}

// Option configures a load.
type Option = options.Option[*Config]

// WithWarnings sends one line per skipped token to w. Warnings are discarded
// by default.
func WithWarnings(w io.Writer) Option {
	return options.NoError(func(c *Config) {
		if w == nil {
			w = io.Discard
		}
		c.warnings = w
	})
}

// Load parses every token of r.
//
// Parameters:
//   - r: Text source
//   - opts: Loader options
//
// Returns:
//   - []uint32: Parsed values in input order (empty, not nil, when nothing parsed)
//   - Stats: Token and skip counts
//   - error: Read errors only; malformed tokens are not errors
func Load(r io.Reader, opts ...Option) ([]uint32, Stats, error) {
	cfg := &Config{warnings: io.Discard}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, Stats{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(scanTokens)

	values := make([]uint32, 0, 64)
	var stats Stats

	for scanner.Scan() {
		tok := scanner.Text()
		stats.Tokens++

		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			stats.Skipped++
			fmt.Fprintf(cfg.warnings, "warning: skipping invalid token %q at position %d\n", tok, stats.Tokens)

			continue
		}
		values = append(values, uint32(v))
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read input: %w", err)
	}

	return values, stats, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...Option) ([]uint32, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Load(f, opts...)
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanTokens is a bufio.SplitFunc that splits on whitespace and commas.
func scanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if isSeparator(r) {
			return i + width, data[start:i], nil
		}
		i += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}
