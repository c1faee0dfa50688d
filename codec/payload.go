package codec

import (
	"fmt"

	"github.com/arloliu/sparsa/endian"
	"github.com/arloliu/sparsa/errs"
)

// payloadWriter appends uint32 fields in a fixed byte order.
type payloadWriter struct {
	buf    []byte
	engine endian.EndianEngine
}

func newPayloadWriter(dst []byte, engine endian.EndianEngine) *payloadWriter {
	return &payloadWriter{buf: dst, engine: engine}
}

func (w *payloadWriter) uint32(v uint32) {
	w.buf = w.engine.AppendUint32(w.buf, v)
}

// uint32s writes len(values) followed by the values.
func (w *payloadWriter) uint32s(values []uint32) {
	w.uint32(uint32(len(values))) //nolint: gosec
	for _, v := range values {
		w.buf = w.engine.AppendUint32(w.buf, v)
	}
}

// bytes writes len(b) followed by b.
func (w *payloadWriter) bytes(b []byte) {
	w.uint32(uint32(len(b))) //nolint: gosec
	w.buf = append(w.buf, b...)
}

// payloadReader is the counterpart of payloadWriter. The first failure is
// sticky: later reads return zero values and finish reports the error.
type payloadReader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
	err    error
}

func newPayloadReader(data []byte, engine endian.EndianEngine) *payloadReader {
	return &payloadReader{data: data, engine: engine}
}

func (r *payloadReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{errs.ErrInvalidPayload}, args...)...)
	}
}

func (r *payloadReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *payloadReader) uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.remaining() < 4 {
		r.fail("truncated at offset %d", r.pos)
		return 0
	}

	v := r.engine.Uint32(r.data[r.pos:])
	r.pos += 4

	return v
}

func (r *payloadReader) uint32s() []uint32 {
	n := int(r.uint32())
	if r.err != nil {
		return nil
	}
	if n > r.remaining()/4 {
		r.fail("%d values declared, %d bytes left", n, r.remaining())
		return nil
	}

	values := make([]uint32, n)
	for i := range values {
		values[i] = r.engine.Uint32(r.data[r.pos:])
		r.pos += 4
	}

	return values
}

func (r *payloadReader) bytes() []byte {
	n := int(r.uint32())
	if r.err != nil {
		return nil
	}
	if n > r.remaining() {
		r.fail("%d bytes declared, %d left", n, r.remaining())
		return nil
	}

	b := make([]byte, n)
	copy(b, r.data[r.pos:r.pos+n])
	r.pos += n

	return b
}

// finish returns the first read error, or an error when bytes are left over.
func (r *payloadReader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidPayload, r.remaining())
	}

	return nil
}

// decodeError wraps a structural decode failure so it matches both
// errs.ErrCalculate and the more specific cause.
func decodeError(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: "+format, append([]any{errs.ErrCalculate, cause}, args...)...)
}
