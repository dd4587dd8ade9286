package dict

import "fmt"

// DefaultVocabulary is the list of professions seeded by NewDefaultIndex.
var DefaultVocabulary = []string{
	"actor",
	"actress",
	"banker",
	"barber",
	"doctor",
	"doorman",
	"farmer",
	"fireman",
}

func NewDefaultIndex() *PrefixIndex {
	idx := NewPrefixIndex()
	if err := idx.InsertAll(DefaultVocabulary...); err != nil {
		panic(fmt.Errorf("could not seed default vocabulary: %w", err))
	}
	return idx
}
