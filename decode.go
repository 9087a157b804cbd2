package trie

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"
)

// Parse decodes text produced by MarshalText into a new Trie.
func Parse(encoded string) (*Trie, error) {
	t := New()
	if err := t.UnmarshalText([]byte(encoded)); err != nil {
		return nil, err
	}
	return t, nil
}

// UnmarshalText replaces the contents of the Trie with the decoded text.
// The Trie is left untouched if the text is invalid; the returned error is
// then a *DecodeError.
func (t *Trie) UnmarshalText(text []byte) error {
	p := parser{src: text}
	root, size, err := p.parse()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = root
	t.size = size
	return nil
}

type parser struct {
	src []byte
	pos int
	// total is the running sum of counts.
	total int
}

// parse rebuilds the tree with the same queue discipline appendText uses:
// every dequeued node owns exactly one ';'-terminated level, and every child
// read from it is queued behind the nodes already waiting.
func (p *parser) parse() (*node, int, error) {
	root := newNode(0)
	if p.pos < len(p.src) && p.src[p.pos] == countOpen {
		count, err := p.count()
		if err != nil {
			return nil, 0, err
		}
		root.count = count
	}

	queue := []*node{root}
	for head := 0; head < len(queue); head++ {
		parent := queue[head]
		for {
			if p.pos >= len(p.src) {
				return nil, 0, malformed(p.pos, "missing %q after level %d", levelDelim, head)
			}
			r, size := utf8.DecodeRune(p.src[p.pos:])
			switch {
			case r == utf8.RuneError && size == 1:
				return nil, 0, malformed(p.pos, "invalid UTF-8")
			case r == countOpen:
				return nil, 0, malformed(p.pos, "count without a symbol")
			case r == countClose:
				return nil, 0, malformed(p.pos, "unmatched %q", countClose)
			case isDigit(r):
				return nil, 0, &DecodeError{Offset: p.pos, Reason: "digit in symbol position", Err: ErrAlphabetViolation}
			}
			if r == levelDelim {
				p.pos++
				break
			}
			if _, dup := parent.children[r]; dup {
				return nil, 0, malformed(p.pos, "duplicate symbol %q in level %d", r, head)
			}
			child := parent.child(r)
			p.pos += size
			if p.pos < len(p.src) && p.src[p.pos] == countOpen {
				count, err := p.count()
				if err != nil {
					return nil, 0, err
				}
				child.count = count
			}
			queue = append(queue, child)
		}
	}
	if p.pos != len(p.src) {
		return nil, 0, malformed(p.pos, "%d trailing bytes", len(p.src)-p.pos)
	}
	return root, p.total, nil
}

// count reads a bracketed multiplicity starting at the '['.
func (p *parser) count() (int, error) {
	start := p.pos
	p.pos++
	digits := p.pos
	for p.pos < len(p.src) && isDigit(rune(p.src[p.pos])) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return 0, malformed(start, "unterminated count")
	}
	if p.src[p.pos] != countClose {
		return 0, malformed(p.pos, "unexpected %q in count", p.src[p.pos])
	}
	text := string(p.src[digits:p.pos])
	if text == "" {
		return 0, malformed(start, "empty count")
	}
	if text[0] == '0' {
		return 0, malformed(start, "count %s is not a positive number without leading zeros", text)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &DecodeError{Offset: start, Reason: "count " + text + " out of range", Err: ErrCountOverflow}
		}
		return 0, malformed(start, "bad count %s", text)
	}
	if n > math.MaxInt-p.total {
		return 0, &DecodeError{Offset: start, Reason: "total count out of range", Err: ErrCountOverflow}
	}
	p.total += n
	p.pos++
	return n, nil
}
