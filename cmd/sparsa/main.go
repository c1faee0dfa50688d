// Command sparsa loads an array of unsigned integers from a text file and
// compares every registered sparse codec on it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arloliu/sparsa/analyzer"
	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/loader"
)

func main() {
	input := flag.String("input", "", "Input file with whitespace or comma separated values (required)")
	rows := flag.Uint("rows", 0, "Reshape the input to this many rows (requires -cols)")
	cols := flag.Uint("cols", 0, "Reshape the input to this many columns (requires -rows)")
	algorithms := flag.String("algorithms", "", "Comma separated algorithm names (default: all)")
	compression := flag.String("compression", "", "Also measure serialized size with this payload compression (None, Zstd, S2, LZ4)")
	parallel := flag.Bool("parallel", false, "Run algorithms concurrently")
	csvOutput := flag.String("csv", "", "Optional CSV output file")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	list := flag.Bool("list", false, "List registered algorithms and exit")

	flag.Parse()

	registry := codec.DefaultRegistry()

	if *list {
		for _, name := range registry.ListAlgorithms() {
			fmt.Println(name)
		}

		return
	}

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}
	if (*rows == 0) != (*cols == 0) {
		fmt.Fprintf(os.Stderr, "Error: -rows and -cols must be given together\n")
		os.Exit(1)
	}

	opts := []analyzer.Option{
		analyzer.WithRegistry(registry),
		analyzer.WithParallel(*parallel),
	}
	if *algorithms != "" {
		opts = append(opts, analyzer.WithAlgorithms(splitNames(*algorithms)...))
	}
	if *compression != "" {
		comp, err := format.ParseCompressionType(*compression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, analyzer.WithCompression(comp))
	}

	var warnings io.Writer = io.Discard
	if *verbose {
		warnings = os.Stderr
	}

	values, stats, err := loader.LoadFile(*input, loader.WithWarnings(warnings))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d of %d tokens\n", stats.Skipped, stats.Tokens)
	}

	var data array.Array = array.OneD{Values: values}
	if *rows > 0 {
		data, err = array.Reshape(values, uint32(*rows), uint32(*cols)) //nolint: gosec
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("=== Sparse Codec Comparison ===")
	fmt.Println()

	a, err := analyzer.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded %d values from %s\n", len(values), *input)
		fmt.Printf("Algorithms: %s\n\n", strings.Join(a.Algorithms(), ", "))
	}

	report, err := a.Run(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := report.WriteTable(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *csvOutput != "" {
		if err := writeCSV(*csvOutput, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nResults written to: %s\n", *csvOutput)
	}

	if len(report.Failed()) == len(report.Entries) {
		os.Exit(1)
	}
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func writeCSV(path string, report analyzer.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
