package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEncoding indicates encoded text that does not follow the
	// level/entry grammar: a missing delimiter, an unmatched bracket, a bad
	// count or trailing data.
	ErrMalformedEncoding = errors.New("trie: malformed encoding")

	// ErrAlphabetViolation indicates a string or decoded symbol containing one
	// of the reserved characters ';', '[', ']' or an ASCII digit, or invalid UTF-8.
	ErrAlphabetViolation = errors.New("trie: alphabet violation")

	// ErrCountOverflow indicates a multiplicity, or a sum of multiplicities,
	// that does not fit the configured limits.
	ErrCountOverflow = errors.New("trie: count overflow")
)

// DecodeError reports where decoding stopped. Err is one of the package's
// sentinel errors.
type DecodeError struct {
	Offset int    // byte offset into the encoded text
	Reason string // human readable detail
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AlphabetError reports a string that cannot be inserted because it contains
// a reserved symbol.
type AlphabetError struct {
	Entry  string
	Offset int // byte offset of Symbol within Entry
	Symbol rune
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d of %q", ErrAlphabetViolation, e.Symbol, e.Offset, e.Entry)
}

func (e *AlphabetError) Unwrap() error { return ErrAlphabetViolation }

func malformed(offset int, format string, args ...any) error {
	return &DecodeError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedEncoding}
}
