package trie

const (
	levelDelim = ';'
	countOpen  = '['
	countClose = ']'
)

// node is one symbol position in a Trie. children holds the lookup map and
// order the symbols in the order they were first inserted, which is the
// order they are written and expanded in. count is the number of strings
// ending here; a node is terminal iff count > 0.
type node struct {
	symbol   rune
	order    []rune
	children map[rune]*node
	count    int
}

func newNode(symbol rune) *node {
	return &node{symbol: symbol, children: make(map[rune]*node)}
}

func (n *node) terminal() bool { return n.count > 0 }

// child returns the child for r, creating it after the existing children if
// it is not there yet.
func (n *node) child(r rune) *node {
	if c, ok := n.children[r]; ok {
		return c
	}
	c := newNode(r)
	n.children[r] = c
	n.order = append(n.order, r)
	return c
}

// removeChild drops the child for r, keeping the order of its siblings.
func (n *node) removeChild(r rune) {
	if _, ok := n.children[r]; !ok {
		return
	}
	delete(n.children, r)
	for i, s := range n.order {
		if s == r {
			n.order = append(n.order[:i], n.order[i+1:]...)
			return
		}
	}
}

// reserved reports whether r collides with the encoding's own syntax.
func reserved(r rune) bool {
	return r == levelDelim || r == countOpen || r == countClose || isDigit(r)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
