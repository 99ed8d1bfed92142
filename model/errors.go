package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// InputError means the caller handed over something unusable: an empty note
// list, a bad grid, a malformed note.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

func NewInputError(format string, args ...any) error {
	return errors.WithStack(&InputError{msg: fmt.Sprintf(format, args...)})
}

// CodecError means the MIDI bytes could not be read or written.
type CodecError struct {
	err error
}

func (e *CodecError) Error() string {
	return "midi codec: " + e.err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.err
}

func NewCodecError(err error, message string) error {
	return errors.WithStack(&CodecError{err: errors.Wrap(err, message)})
}

func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

func IsCodecError(err error) bool {
	var target *CodecError
	return errors.As(err, &target)
}
