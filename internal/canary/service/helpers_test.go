package service

import (
	"bytes"
	"errors"
	"fmt"
)

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// sequenceReader yields 0x00, 0x01, 0x02 ... so generated output is deterministic.
type sequenceReader struct {
	next byte
}

func (r *sequenceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

var errRandomUnavailable = errors.New("entropy source unavailable")

// failingReader returns errRandomUnavailable after n bytes.
func failingReader(n int) *limitedFailReader {
	return &limitedFailReader{remaining: bytes.Repeat([]byte{0xab}, n)}
}

type limitedFailReader struct {
	remaining []byte
}

func (r *limitedFailReader) Read(p []byte) (int, error) {
	if len(r.remaining) == 0 {
		return 0, errRandomUnavailable
	}
	n := copy(p, r.remaining)
	r.remaining = r.remaining[n:]
	return n, nil
}
