package trie

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxPrealloc bounds the capacity reserved up front by Contents, so a forged
// count cannot force a huge allocation before any string is produced.
const maxPrealloc = 1 << 16

// Trie is a prefix tree counting how many times each string was inserted.
// Children keep their insertion order, which makes the encoding of a Trie
// deterministic.
type Trie struct {
	root       *node
	mu         sync.RWMutex
	normalised bool
	// size is the sum of all counts.
	size int
}

// New creates a new empty trie. Normalisation is off by default so strings
// come back byte for byte.
func New() *Trie {
	return &Trie{root: newNode(0)}
}

// WithNormalisation sets the Trie to convert strings to Unicode NFC before
// inserting, counting or removing them, so canonically equivalent spellings
// share nodes. For example "e" followed by U+0301 and a precomposed "é" are
// stored as one string.
func (t *Trie) WithNormalisation() *Trie {
	t.normalised = true
	return t
}

// WithoutNormalisation sets the Trie to store strings exactly as given.
func (t *Trie) WithoutNormalisation() *Trie {
	t.normalised = false
	return t
}

// Insert adds strings to the Trie. Every entry is checked before any is
// inserted, so on error the Trie is unchanged.
func (t *Trie) Insert(entries ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	prepared := make([]string, len(entries))
	for i, entry := range entries {
		entry, err := t.canonical(entry)
		if err != nil {
			return err
		}
		if err := validate(entry); err != nil {
			return err
		}
		prepared[i] = entry
	}
	for _, entry := range prepared {
		t.insertInternal(entry)
	}
	return nil
}

// insertInternal performs the actual insertion without locking.
func (t *Trie) insertInternal(entry string) {
	currentNode := t.root
	for _, character := range entry {
		currentNode = currentNode.child(character)
	}
	currentNode.count++
	t.size++
}

// Count returns how many times word was inserted.
func (t *Trie) Count(word string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	word, err := t.canonical(word)
	if err != nil {
		return 0
	}
	current := t.root
	for _, r := range word {
		next, ok := current.children[r]
		if !ok {
			return 0
		}
		current = next
	}
	return current.count
}

// Remove takes away one occurrence of word and reports whether there was one.
// Nodes left with no children and no strings are pruned.
func (t *Trie) Remove(word string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	word, err := t.canonical(word)
	if err != nil {
		return false
	}

	// traverse to node
	runes := []rune(word)
	path := make([]*node, 0, len(runes)+1)
	path = append(path, t.root)
	current := t.root
	for _, r := range runes {
		next, ok := current.children[r]
		if !ok {
			return false
		}
		current = next
		path = append(path, current)
	}
	if !current.terminal() {
		return false
	}
	current.count--
	t.size--
	// prune
	for i := len(runes); i > 0; i-- {
		parent := path[i-1]
		child := path[i]
		if len(child.order) == 0 && !child.terminal() {
			parent.removeChild(runes[i-1])
		} else {
			break
		}
	}
	return true
}

// Len returns the number of strings held, counting duplicates.
func (t *Trie) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Contents returns every string in the Trie, each repeated as often as it was
// inserted. Strings are listed depth first with children in insertion order,
// so a string always comes before the strings it is a prefix of.
func (t *Trie) Contents() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.expand(min(t.size, maxPrealloc))
}

// expand walks the subtree with an explicit stack. Each frame owns the path
// that leads to its node, so nothing has to be undone on the way back up.
func (n *node) expand(capacity int) []string {
	type frame struct {
		node *node
		path string
	}
	words := make([]string, 0, capacity)
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for range f.node.count {
			words = append(words, f.path)
		}
		// push in reverse so the first inserted child is popped first
		for i := len(f.node.order) - 1; i >= 0; i-- {
			child := f.node.children[f.node.order[i]]
			stack = append(stack, frame{node: child, path: f.path + string(child.symbol)})
		}
	}
	return words
}

func (t *Trie) canonical(entry string) (string, error) {
	if !t.normalised {
		return entry, nil
	}
	normal, _, err := transform.String(norm.NFC, entry)
	if err != nil {
		return "", err
	}
	return normal, nil
}

// validate rejects strings the encoding could not represent unambiguously.
func validate(entry string) error {
	for offset := 0; offset < len(entry); {
		r, size := utf8.DecodeRuneInString(entry[offset:])
		if (r == utf8.RuneError && size == 1) || reserved(r) {
			return &AlphabetError{Entry: entry, Offset: offset, Symbol: r}
		}
		offset += size
	}
	return nil
}
