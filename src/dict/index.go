package dict

import "fmt"

// PrefixIndex is a dictionary of lowercase words supporting exact-prefix lookup. It is not safe for
// concurrent use; see SyncIndex.
type PrefixIndex struct {
	root *trieNode
}

func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: &trieNode{}}
}

// Insert stores word in the index. Inserting a word which is already stored has no effect. If word contains
// anything other than the letters 'a' through 'z', an *InvalidCharacterError is returned and the index is
// left unchanged.
func (p *PrefixIndex) Insert(word string) error {
	if err := validate(word); err != nil {
		return err
	}
	p.root.insert(word)
	return nil
}

// InsertAll inserts each word in order, stopping at the first invalid word.
func (p *PrefixIndex) InsertAll(words ...string) error {
	for i, word := range words {
		if err := p.Insert(word); err != nil {
			return fmt.Errorf("could not insert word %d: %w", i, err)
		}
	}
	return nil
}

// Query returns every stored word beginning with prefix, in lexicographic order. An empty prefix matches
// every stored word. When nothing matches, the result is empty and the error is nil.
func (p *PrefixIndex) Query(prefix string) ([]string, error) {
	if err := validate(prefix); err != nil {
		return nil, err
	}
	node := p.root.find(prefix)
	if node == nil {
		return []string{}, nil
	}
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	return node.collect(buf, []string{}), nil
}

func (p *PrefixIndex) Contains(word string) bool {
	if validate(word) != nil {
		return false
	}
	return p.root.find(word).isWordNode()
}

// HasPrefix reports whether at least one stored word begins with prefix.
func (p *PrefixIndex) HasPrefix(prefix string) bool {
	if validate(prefix) != nil {
		return false
	}
	node := p.root.find(prefix)
	if node == p.root {
		return node.count() > 0
	}
	// nodes below the root are only ever created on the path to a stored word
	return node != nil
}

// Len returns the number of distinct words stored.
func (p *PrefixIndex) Len() int {
	return p.root.count()
}
