package dict

const alphabetSize = 26

type trieNode struct {
	isWord   bool
	children [alphabetSize]*trieNode
}

// insert assumes word has already been validated.
func (n *trieNode) insert(word string) {
	if len(word) == 0 {
		n.isWord = true
		return
	}

	idx := word[0] - 'a'
	if child := n.children[idx]; child == nil {
		n.children[idx] = &trieNode{}
	}
	n.children[idx].insert(word[1:])
}

// find returns the node reached by following str from n, or nil if the path does not exist.
func (n *trieNode) find(str string) *trieNode {
	if n == nil || len(str) == 0 {
		return n
	}
	return n.child(str[0]).find(str[1:])
}

// collect appends every word in the subtree rooted at n, in pre-order and ascending letter order.
// buf holds the letters spelled so far.
func (n *trieNode) collect(buf []byte, out []string) []string {
	if n.isWord {
		out = append(out, string(buf))
	}
	for i, child := range n.children {
		if child == nil {
			continue
		}
		out = child.collect(append(buf, 'a'+byte(i)), out)
	}
	return out
}

func (n *trieNode) count() int {
	total := 0
	if n.isWord {
		total++
	}
	for _, child := range n.children {
		if child != nil {
			total += child.count()
		}
	}
	return total
}

func (n *trieNode) child(ch byte) *trieNode {
	if n == nil || !isLetter(ch) {
		return nil
	}
	return n.children[ch-'a']
}

func (n *trieNode) isWordNode() bool {
	return n != nil && n.isWord
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}
