package trie

import (
	"fmt"
	"log/slog"
)

// Codec turns lists of strings into their trie encoding and back. The zero
// value is not usable; create one with NewCodec. A Codec holds only settings
// and may be shared between goroutines once configured.
type Codec struct {
	normalised bool
	maxStrings int
	logger     *slog.Logger
}

// NewCodec creates a Codec without normalisation, without a limit on the
// number of decoded strings and with logging discarded.
func NewCodec() *Codec {
	return &Codec{logger: slog.New(slog.DiscardHandler)}
}

// WithNormalisation sets the Codec to encode strings in Unicode NFC.
func (c *Codec) WithNormalisation() *Codec {
	c.normalised = true
	return c
}

// WithoutNormalisation sets the Codec to encode strings exactly as given.
func (c *Codec) WithoutNormalisation() *Codec {
	c.normalised = false
	return c
}

// WithMaxStrings limits how many strings Decode will expand an encoding into.
// Zero means no limit.
func (c *Codec) WithMaxStrings(n int) *Codec {
	c.maxStrings = max(n, 0)
	return c
}

// WithLogger sets the logger used for debug output.
func (c *Codec) WithLogger(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
	return c
}

// Encode builds a trie from entries and returns its encoding.
func (c *Codec) Encode(entries []string) (string, error) {
	t := New()
	if c.normalised {
		t.WithNormalisation()
	}
	if err := t.Insert(entries...); err != nil {
		return "", err
	}
	text, err := t.MarshalText()
	if err != nil {
		return "", err
	}
	c.logger.Debug("encoded strings", "strings", len(entries), "bytes", len(text))
	return string(text), nil
}

// Decode rebuilds the strings held by an encoding. Strings come back grouped:
// duplicates are adjacent and a string precedes the strings it prefixes.
func (c *Codec) Decode(encoded string) ([]string, error) {
	t, err := Parse(encoded)
	if err != nil {
		c.logger.Debug("decode failed", "bytes", len(encoded), "error", err)
		return nil, err
	}
	if c.maxStrings > 0 && t.Len() > c.maxStrings {
		return nil, fmt.Errorf("%w: encoding holds %d strings, limit is %d", ErrCountOverflow, t.Len(), c.maxStrings)
	}
	words := t.Contents()
	c.logger.Debug("decoded strings", "bytes", len(encoded), "strings", len(words))
	return words, nil
}

// Encode returns the encoding of entries using a default Codec.
func Encode(entries []string) (string, error) {
	return NewCodec().Encode(entries)
}

// Decode returns the strings held by encoded using a default Codec.
func Decode(encoded string) ([]string, error) {
	return NewCodec().Decode(encoded)
}
