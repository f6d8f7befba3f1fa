package terminal

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every DecodeError
var ErrMalformed = errors.New("malformed input sequence")

// DecodeError reports a byte sequence the decoder could not make sense of.
// The sequence has been discarded; decoding resumes with the next byte.
type DecodeError struct {
	Seq    []byte // Copy of the discarded bytes
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed input sequence %q: %s", e.Seq, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrMalformed
}

func malformed(buf []byte, reason string) error {
	seq := make([]byte, len(buf))
	copy(seq, buf)
	return &DecodeError{Seq: seq, Reason: reason}
}
