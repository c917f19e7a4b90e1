package spyparty

import (
	"errors"
	"fmt"
)

// Errors that come out of decoding a replay. They are all fatal for the file being read.
var (
	ErrIO                       = errors.New("could not read replay")
	ErrInvalidIdentifier        = errors.New("invalid identifier")
	ErrUnsupportedReplayVersion = errors.New("unsupported replay version")
	ErrUnsupportedResultVersion = errors.New("unsupported result data version")
	ErrMissingSpyName           = errors.New("missing spy username")
	ErrMissingSniperName        = errors.New("missing sniper username")
	ErrInvalidString            = errors.New("invalid UTF8 string")
	ErrInvalidGameResult        = errors.New("invalid game result")
	ErrInvalidGameMode          = errors.New("invalid game mode")
)

// Errors for text supplied by a user, e.g. on the command line. These only ever fail the
// lookup they came from.
var (
	ErrUnknownMap        = errors.New("unknown map")
	ErrUnknownMission    = errors.New("unknown mission")
	ErrUnknownGameMode   = errors.New("unknown game mode")
	ErrUnknownGameResult = errors.New("unknown game result")
)

// ReadError is returned when the underlying reader fails or runs out of bytes. Field and
// Offset say exactly where in the header that happened.
type ReadError struct {
	Field  string
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%v: reading %s at offset %#x: %v", ErrIO, e.Field, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// StringError is returned when a name field is not valid UTF-8. Index is the position of
// the first invalid byte within the field.
type StringError struct {
	Field  string
	Offset int64
	Index  int
}

func (e *StringError) Error() string {
	return fmt.Sprintf("%v: %s at offset %#x (invalid byte at index %d)", ErrInvalidString, e.Field, e.Offset, e.Index)
}

func (e *StringError) Unwrap() error {
	return ErrInvalidString
}

// VersionError carries a known but unhandled replay or result data version.
type VersionError struct {
	Kind    error
	Version uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%v (%d)", e.Kind, e.Version)
}

func (e *VersionError) Unwrap() error {
	return e.Kind
}

// ValueError carries an enumerant read from the file that doesn't map to anything we know.
type ValueError struct {
	Kind  error
	Value uint32
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v (%#x)", e.Kind, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Kind
}

// ParseError is returned when user supplied text can't be turned into a value.
type ParseError struct {
	Kind  error
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v (%q)", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
