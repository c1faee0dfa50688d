// Command sparsegen writes a synthetic sparse matrix as space separated text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/generator"
)

func main() {
	rows := flag.Uint("rows", 100, "Number of rows")
	cols := flag.Uint("cols", 100, "Number of columns")
	pattern := flag.String("pattern", "diagonal", "Sparsity pattern (diagonal, banded, block)")
	sparsity := flag.Float64("sparsity", 0.9, "Sparsity in [0, 1); controls the band width")
	minValue := flag.Uint("min", 1, "Minimum non-main value")
	maxValue := flag.Uint("max", 100, "Maximum non-main value")
	mainValue := flag.Uint("main", 0, "Value of cells outside the pattern")
	seed := flag.Int64("seed", 42, "Random seed")
	output := flag.String("output", "matrix.txt", "Output file")

	flag.Parse()

	p, err := generator.ParsePattern(*pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	//nolint: gosec
	cfg := generator.Config{
		Rows:      uint32(*rows),
		Cols:      uint32(*cols),
		Pattern:   p,
		Sparsity:  *sparsity,
		MinValue:  uint32(*minValue),
		MaxValue:  uint32(*maxValue),
		MainValue: uint32(*mainValue),
		Seed:      *seed,
	}

	m, err := generator.Generate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := save(*output, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Matrix saved to %s (%dx%d, %s)\n", *output, cfg.Rows, cfg.Cols, cfg.Pattern)
}

func save(path string, m array.TwoD) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := generator.WriteText(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
