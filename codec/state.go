package codec

import (
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/sparsa/array"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
)

// state holds what every codec needs besides its own representation: the
// shape of the original input, the retained input for self-verification and
// the last Result.
type state struct {
	mode format.Mode
	kind format.Dimension
	rows uint32
	cols uint32

	// origin is the flattened input of the last Compress. It is nil for a
	// codec restored from a payload, which verifies against fingerprint instead.
	origin      []uint32
	fingerprint uint64
	hasPrint    bool

	ready  bool
	result Result
}

// Mode returns the codec's identity.
func (s *state) Mode() format.Mode {
	return s.mode
}

// Result returns the measurements of the last run.
func (s *state) Result() Result {
	return s.result
}

func (s *state) count() int {
	return int(s.rows) * int(s.cols)
}

// begin validates input against the supported kinds, resets all state and
// returns the flattened input.
func (s *state) begin(input array.Array, supported ...format.Dimension) ([]uint32, error) {
	if input == nil {
		return nil, errs.ErrInputEmpty
	}
	if !slices.Contains(supported, input.Kind()) {
		return nil, fmt.Errorf("%w: %s does not accept %s input", errs.ErrUnsupportedDimension, s.mode, input.Kind())
	}
	if err := array.Validate(input); err != nil {
		return nil, err
	}

	flat := array.Flatten(input)
	rows, cols := array.Shape(input)

	s.kind = input.Kind()
	s.rows = rows
	s.cols = cols
	s.origin = flat
	s.fingerprint = 0
	s.hasPrint = false
	s.ready = false
	s.result = Result{}

	return flat, nil
}

// finishCompress records the size accounting of a successful Compress.
func (s *state) finishCompress(elapsed time.Duration, elems, size uint32) {
	s.result = newResult(s.mode, s.count(), elems, size, elapsed)
	s.ready = true
}

// checkReady fails with errs.ErrNotCompressed when no compressed state exists.
func (s *state) checkReady() error {
	if !s.ready {
		return errs.ErrNotCompressed
	}

	return nil
}

// finishDecompress verifies the decoded values and reshapes them into the
// original kind. DecompressTimeMs is only recorded when verification passes.
func (s *state) finishDecompress(decoded []uint32, elapsed time.Duration) (array.Array, error) {
	if err := s.verify(decoded); err != nil {
		return nil, err
	}

	out, err := s.shape(decoded)
	if err != nil {
		return nil, err
	}
	s.result.DecompressTimeMs = toMillis(elapsed)

	return out, nil
}

// verify compares decoded against the original input.
func (s *state) verify(decoded []uint32) error {
	if len(decoded) != s.count() {
		return fmt.Errorf("%w: decoded %d elements, expected %d", errs.ErrCalculate, len(decoded), s.count())
	}

	if s.origin != nil {
		for i, v := range decoded {
			if v != s.origin[i] {
				return fmt.Errorf("%w: element %d decoded as %d, expected %d", errs.ErrCalculate, i, v, s.origin[i])
			}
		}

		return nil
	}

	if array.FingerprintFlat(s.kind, s.rows, s.cols, decoded) != s.fingerprint {
		return errs.ErrChecksumMismatch
	}

	return nil
}

// shape converts a flat sequence back into the kind of the original input.
func (s *state) shape(flat []uint32) (array.Array, error) {
	if s.kind == format.Dim1D {
		return array.OneD{Values: flat}, nil
	}

	return array.Reshape(flat, s.rows, s.cols)
}

// Meta returns the description of the compressed array.
func (s *state) Meta() (Meta, error) {
	if err := s.checkReady(); err != nil {
		return Meta{}, err
	}

	if !s.hasPrint {
		s.fingerprint = array.FingerprintFlat(s.kind, s.rows, s.cols, s.origin)
		s.hasPrint = true
	}

	return Meta{
		Mode:        s.mode,
		Kind:        s.kind,
		Rows:        s.rows,
		Cols:        s.cols,
		Fingerprint: s.fingerprint,
	}, nil
}

// beginLoad validates meta against the codec and resets state for a payload
// load. The codec stays unusable until finishLoad.
func (s *state) beginLoad(meta Meta, supported ...format.Dimension) error {
	if meta.Mode != s.mode {
		return fmt.Errorf("%w: payload for %s loaded into %s", errs.ErrParamInvalid, meta.Mode, s.mode)
	}
	if !slices.Contains(supported, meta.Kind) {
		return fmt.Errorf("%w: %s does not accept %s input", errs.ErrUnsupportedDimension, s.mode, meta.Kind)
	}
	if meta.Rows == 0 || meta.Cols == 0 {
		return errs.ErrInputEmpty
	}
	if meta.Kind == format.Dim1D && meta.Rows != 1 {
		return fmt.Errorf("%w: 1D array with %d rows", errs.ErrParamInvalid, meta.Rows)
	}

	s.kind = meta.Kind
	s.rows = meta.Rows
	s.cols = meta.Cols
	s.origin = nil
	s.fingerprint = meta.Fingerprint
	s.hasPrint = true
	s.ready = false
	s.result = Result{}

	return nil
}

// finishLoad marks a loaded codec ready and rebuilds its size accounting.
func (s *state) finishLoad(elems, size uint32) {
	s.finishCompress(0, elems, size)
}
