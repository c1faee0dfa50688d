// Package analyzer runs every registered codec against one array and collects
// the results.
//
// For each algorithm the analyzer creates a fresh codec, compresses, then
// decompresses (which self-verifies against the input). A codec that fails is
// recorded with its error and skipped; a failed Compress is never followed by
// Decompress.
package analyzer

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/internal/options"
	"github.com/arloliu/sparsa/wire"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Analyzer compares codecs on the same input. It is safe for concurrent use.
type Analyzer struct {
	cfg   *Config
	cache *lru.Cache[uint64, Report]
}

// New creates an Analyzer.
//
// Parameters:
//   - opts: Analyzer options
//
// Returns:
//   - *Analyzer: Configured analyzer
//   - error: Option validation errors
func New(opts ...Option) (*Analyzer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	a := &Analyzer{cfg: cfg}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[uint64, Report](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		a.cache = cache
	}

	return a, nil
}

// Algorithms returns the names a run will use, sorted.
func (a *Analyzer) Algorithms() []string {
	if len(a.cfg.algorithms) > 0 {
		names := slices.Clone(a.cfg.algorithms)
		slices.Sort(names)

		return slices.Compact(names)
	}

	return a.cfg.registry.ListAlgorithms()
}

// Run analyzes input with every configured codec.
//
// Codec failures do not fail the run; they are reported per entry.
//
// Returns:
//   - Report: One entry per algorithm, sorted by name
//   - error: Input validation errors only
func (a *Analyzer) Run(input array.Array) (Report, error) {
	if err := array.Validate(input); err != nil {
		return Report{}, err
	}

	var key uint64
	if a.cache != nil {
		key = array.Fingerprint(input)
		if report, ok := a.cache.Get(key); ok {
			return report.clone(), nil
		}
	}

	rows, cols := array.Shape(input)
	names := a.Algorithms()
	report := Report{
		Kind:    input.Kind(),
		Rows:    rows,
		Cols:    cols,
		Entries: make([]Entry, len(names)),
	}

	if a.cfg.parallel {
		var wg sync.WaitGroup
		for i, name := range names {
			wg.Add(1)
			go func() {
				defer wg.Done()
				report.Entries[i] = a.runOne(name, input)
			}()
		}
		wg.Wait()
	} else {
		for i, name := range names {
			report.Entries[i] = a.runOne(name, input)
		}
	}

	if a.cache != nil {
		a.cache.Add(key, report.clone())
	}

	return report, nil
}

// runOne runs Create, Compress and Decompress for one algorithm.
func (a *Analyzer) runOne(name string, input array.Array) Entry {
	entry := Entry{Name: name}

	c, ok := a.cfg.registry.Create(name)
	if !ok {
		entry.Err = fmt.Errorf("%w: %q", errs.ErrUnknownAlgorithm, name)
		return entry
	}

	if err := c.Compress(input); err != nil {
		entry.Err = fmt.Errorf("compress: %w", err)
		return entry
	}

	if _, err := c.Decompress(); err != nil {
		entry.Result = c.Result()
		entry.Err = fmt.Errorf("decompress: %w", err)

		return entry
	}
	entry.Result = c.Result()

	if a.cfg.measureWire {
		data, err := wire.Marshal(c, wire.WithCompression(a.cfg.compression))
		if err != nil {
			entry.Err = fmt.Errorf("serialize: %w", err)
			return entry
		}
		entry.SerializedBytes = len(data)
	}

	return entry
}
