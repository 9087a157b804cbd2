package trie

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// MarshalText encodes the Trie. Tries with the same symbols, child order and
// counts always produce the same text.
func (t *Trie) MarshalText() ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.appendText(nil), nil
}

// WriteTo writes the encoding of the Trie to w.
func (t *Trie) WriteTo(w io.Writer) (int64, error) {
	text, err := t.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(text)
	return int64(n), err
}

// appendText appends the breadth-first encoding of the tree rooted at n.
// A count on n itself, which only happens when the empty string was
// inserted, is written in front of the first level.
func (n *node) appendText(dst []byte) []byte {
	if n.terminal() {
		dst = appendCount(dst, n.count)
	}
	queue := []*node{n}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, r := range current.order {
			child := current.children[r]
			dst = utf8.AppendRune(dst, child.symbol)
			if child.terminal() {
				dst = appendCount(dst, child.count)
			}
			queue = append(queue, child)
		}
		dst = append(dst, levelDelim)
	}
	return dst
}

func appendCount(dst []byte, count int) []byte {
	dst = append(dst, countOpen)
	dst = strconv.AppendInt(dst, int64(count), 10)
	return append(dst, countClose)
}
