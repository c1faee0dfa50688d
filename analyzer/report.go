package analyzer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/format"
)

// Entry is the outcome of one algorithm.
type Entry struct {
	Name   string
	Result codec.Result
	// SerializedBytes is the wire size including header, when measured.
	SerializedBytes int
	// Err is set when the algorithm failed; Result may then be partial.
	Err error
}

// OK reports whether the algorithm completed.
func (e Entry) OK() bool {
	return e.Err == nil
}

// Report collects the entries of one run.
type Report struct {
	Kind    format.Dimension
	Rows    uint32
	Cols    uint32
	Entries []Entry
}

// clone returns a copy whose Entries does not share memory with r.
func (r Report) clone() Report {
	r.Entries = slices.Clone(r.Entries)
	return r
}

// Best returns the successful entry with the smallest compressed size. Ties go
// to the entry listed first.
func (r Report) Best() (Entry, bool) {
	var best Entry
	found := false

	for _, e := range r.Entries {
		if !e.OK() {
			continue
		}
		if !found || e.Result.CompressedSizeBytes < best.Result.CompressedSizeBytes {
			best = e
			found = true
		}
	}

	return best, found
}

// Failed returns the entries that did not complete.
func (r Report) Failed() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if !e.OK() {
			failed = append(failed, e)
		}
	}

	return failed
}

// WriteTable renders the report as an aligned text table.
func (r Report) WriteTable(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Input: %s %dx%d (%d elements)\n\n", r.Kind, r.Rows, r.Cols, int(r.Rows)*int(r.Cols))
	fmt.Fprintf(&sb, "%-15s | %-10s | %-10s | %-10s | %-10s | %-8s | %-11s | %-11s | %-10s\n",
		"Algorithm", "Elements", "Cmp Elems", "Bytes", "Cmp Bytes", "Ratio", "Compress ms", "Decomp ms", "Wire Bytes")
	sb.WriteString(strings.Repeat("-", 120))
	sb.WriteByte('\n')

	for _, e := range r.Entries {
		if !e.OK() {
			fmt.Fprintf(&sb, "%-15s | FAILED: %v\n", e.Name, e.Err)
			continue
		}

		res := e.Result
		wireBytes := "-"
		if e.SerializedBytes > 0 {
			wireBytes = formatNumber(e.SerializedBytes)
		}
		fmt.Fprintf(&sb, "%-15s | %-10s | %-10s | %-10s | %-10s | %-8s | %-11.4f | %-11.4f | %-10s\n",
			e.Name,
			formatNumber(int(res.OriginElementCount)),
			formatNumber(int(res.CompressedElementCount)),
			formatNumber(int(res.OriginSizeBytes)),
			formatNumber(int(res.CompressedSizeBytes)),
			fmt.Sprintf("%.2f%%", res.CompressionRatio),
			res.CompressTimeMs,
			res.DecompressTimeMs,
			wireBytes)
	}

	if best, ok := r.Best(); ok {
		fmt.Fprintf(&sb, "\nBest: %s (%.2f%% of original, %.1f%% saved)\n",
			best.Name, best.Result.CompressionRatio, best.Result.SpaceSavings())
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// WriteCSV renders the report as CSV with a header row.
func (r Report) WriteCSV(w io.Writer) error {
	_, err := io.WriteString(w, "algorithm,origin_elements,compressed_elements,origin_bytes,compressed_bytes,"+
		"compression_ratio,compress_ms,decompress_ms,serialized_bytes,error\n")
	if err != nil {
		return err
	}

	for _, e := range r.Entries {
		res := e.Result
		errMsg := ""
		if e.Err != nil {
			errMsg = csvQuote(e.Err.Error())
		}

		_, err = fmt.Fprintf(w, "%s,%d,%d,%d,%d,%.4f,%.6f,%.6f,%d,%s\n",
			csvQuote(e.Name),
			res.OriginElementCount,
			res.CompressedElementCount,
			res.OriginSizeBytes,
			res.CompressedSizeBytes,
			res.CompressionRatio,
			res.CompressTimeMs,
			res.DecompressTimeMs,
			e.SerializedBytes,
			errMsg)
		if err != nil {
			return err
		}
	}

	return nil
}

// csvQuote quotes s when it contains a comma, quote or newline.
func csvQuote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}

	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatNumber adds thousands separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}

	return sb.String()
}
