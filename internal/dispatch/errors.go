package dispatch

import (
	"errors"
	"fmt"
)

// Kind classifies a dispatch failure.
type Kind uint8

const (
	// KindMissingArgument means the invocation carried no usable word.
	KindMissingArgument Kind = iota + 1
	// KindStoreFailed means the word list could not be updated.
	KindStoreFailed
)

var (
	ErrMissingArgument = errors.New("missing word argument")
	ErrStoreFailed     = errors.New("word list update failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissingArgument:
		return ErrMissingArgument
	case KindStoreFailed:
		return ErrStoreFailed
	default:
		return nil
	}
}

// Error describes a failed command invocation. For KindStoreFailed, Err holds the
// store error.
type Error struct {
	Kind    Kind
	Command string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Command, e.Kind.sentinel(), e.Detail)
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }
