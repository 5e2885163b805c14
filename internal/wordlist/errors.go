package wordlist

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind uint8

const (
	// KindMalformed means the existing document could not be parsed; nothing was written.
	KindMalformed Kind = iota + 1
	// KindEncodeFailed means the updated document could not be produced; nothing was written.
	KindEncodeFailed
	// KindIOFailed means the write failed; the previous file is left as it was.
	KindIOFailed
)

var (
	ErrMalformed    = errors.New("malformed word list")
	ErrEncodeFailed = errors.New("word list encoding failed")
	ErrIOFailed     = errors.New("word list write failed")
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindEncodeFailed:
		return "encode failed"
	case KindIOFailed:
		return "io failed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindMalformed:
		return ErrMalformed
	case KindEncodeFailed:
		return ErrEncodeFailed
	case KindIOFailed:
		return ErrIOFailed
	default:
		return nil
	}
}

// Error describes a failed store operation.
type Error struct {
	Kind   Kind
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind.sentinel(), e.Detail)
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, path string, err error, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
