package dict_test

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/kalexmills/prefix-suggest/src/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixIndex_Query(t *testing.T) {
	idx := dict.NewDefaultIndex()

	tests := []struct {
		prefix   string
		expected []string
	}{
		{"act", []string{"actor", "actress"}},
		{"do", []string{"doctor", "doorman"}},
		{"z", []string{}},
		{"", []string{"actor", "actress", "banker", "barber", "doctor", "doorman", "farmer", "fireman"}},
		{"b", []string{"banker", "barber"}},
		{"f", []string{"farmer", "fireman"}},
		{"actor", []string{"actor"}},
		{"actors", []string{}},
		{"doormen", []string{}},
		{"fireman", []string{"fireman"}},
	}

	for _, tt := range tests {
		result, err := idx.Query(tt.prefix)
		require.NoError(t, err, tt.prefix)
		assert.Equal(t, tt.expected, result, "query(%q)", tt.prefix)
	}
}

func TestPrefixIndex_QueryUnknownPrefixIsEmptyNotNil(t *testing.T) {
	idx := dict.NewDefaultIndex()

	result, err := idx.Query("xyz")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	result, err = dict.NewPrefixIndex().Query("")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestPrefixIndex_InsertIsIdempotent(t *testing.T) {
	idx := dict.NewPrefixIndex()
	require.NoError(t, idx.Insert("actor"))
	require.NoError(t, idx.Insert("actor"))

	result, err := idx.Query("actor")
	assert.NoError(t, err)
	assert.Equal(t, []string{"actor"}, result)
	assert.Equal(t, 1, idx.Len())

	once := dict.NewDefaultIndex()
	twice := dict.NewDefaultIndex()
	require.NoError(t, twice.InsertAll(dict.DefaultVocabulary...))
	for _, prefix := range []string{"", "a", "ba", "doo", "q"} {
		expected, _ := once.Query(prefix)
		actual, _ := twice.Query(prefix)
		assert.Equal(t, expected, actual, prefix)
	}
}

func TestPrefixIndex_EveryInsertedWordIsFound(t *testing.T) {
	words := []string{"a", "ab", "abc", "b", "zebra", "zeal", "zero", "aardvark", "mississippi"}
	idx := dict.NewPrefixIndex()
	require.NoError(t, idx.InsertAll(words...))

	for _, word := range words {
		result, err := idx.Query(word)
		assert.NoError(t, err)
		assert.Contains(t, result, word)
		assert.True(t, idx.Contains(word), word)
	}

	all, err := idx.Query("")
	assert.NoError(t, err)
	assert.True(t, sort.StringsAreSorted(all), "%v is not sorted", all)
	assert.Len(t, all, len(words))
}

func TestPrefixIndex_ShorterWordsComeFirst(t *testing.T) {
	idx := dict.NewPrefixIndex()
	require.NoError(t, idx.InsertAll("abc", "ab", "abd", "a", "b"))

	result, err := idx.Query("a")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "ab", "abc", "abd"}, result)
}

func TestPrefixIndex_InvalidCharacter(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		char  byte
	}{
		{"Actor", 0, 'A'},
		{"act0r", 3, '0'},
		{"doc tor", 3, ' '},
		{"café", 3, 0xc3},
		{"a-b", 1, '-'},
	}

	for _, tt := range tests {
		idx := dict.NewDefaultIndex()

		err := idx.Insert(tt.input)
		require.Error(t, err, tt.input)
		assert.True(t, errors.Is(err, dict.ErrInvalidCharacter), tt.input)

		var charErr *dict.InvalidCharacterError
		require.True(t, errors.As(err, &charErr), tt.input)
		assert.Equal(t, tt.pos, charErr.Pos, tt.input)
		assert.Equal(t, tt.char, charErr.Char, tt.input)
		assert.Equal(t, tt.input, charErr.Input)

		// rejected input must not leave partial paths behind
		assert.Equal(t, len(dict.DefaultVocabulary), idx.Len())
		all, _ := idx.Query("")
		assert.Equal(t, dict.DefaultVocabulary, all)

		result, err := idx.Query(tt.input)
		assert.ErrorIs(t, err, dict.ErrInvalidCharacter)
		assert.Nil(t, result)

		assert.False(t, idx.Contains(tt.input))
		assert.False(t, idx.HasPrefix(tt.input))
	}
}

func TestPrefixIndex_InsertAllStopsAtFirstError(t *testing.T) {
	idx := dict.NewPrefixIndex()
	err := idx.InsertAll("one", "Two", "three")
	assert.ErrorIs(t, err, dict.ErrInvalidCharacter)
	assert.Contains(t, err.Error(), "word 1")

	assert.True(t, idx.Contains("one"))
	assert.False(t, idx.Contains("three"))
	assert.Equal(t, 1, idx.Len())
}

func TestPrefixIndex_Lookups(t *testing.T) {
	idx := dict.NewDefaultIndex()

	assert.True(t, idx.Contains("doctor"))
	assert.False(t, idx.Contains("doc"))
	assert.False(t, idx.Contains(""))

	assert.True(t, idx.HasPrefix("doc"))
	assert.True(t, idx.HasPrefix("doctor"))
	assert.True(t, idx.HasPrefix(""))
	assert.False(t, idx.HasPrefix("doctors"))
	assert.False(t, dict.NewPrefixIndex().HasPrefix(""))

	assert.Equal(t, 8, idx.Len())
	assert.Equal(t, 0, dict.NewPrefixIndex().Len())
}

func TestPrefixIndex_EmptyWord(t *testing.T) {
	idx := dict.NewPrefixIndex()
	require.NoError(t, idx.Insert(""))

	assert.True(t, idx.Contains(""))
	result, err := idx.Query("")
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, result)
}

func TestSyncIndex(t *testing.T) {
	idx := dict.NewSyncIndex(dict.NewPrefixIndex())

	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	var wg sync.WaitGroup
	for _, word := range words {
		wg.Add(2)
		go func(word string) {
			defer wg.Done()
			assert.NoError(t, idx.Insert(word))
		}(word)
		go func(prefix string) {
			defer wg.Done()
			_, err := idx.Query(prefix)
			assert.NoError(t, err)
		}(word[:1])
	}
	wg.Wait()

	all, err := idx.Query("")
	assert.NoError(t, err)
	assert.Equal(t, words, all)
	assert.Equal(t, len(words), idx.Len())
	assert.True(t, idx.Contains("echo"))
	assert.True(t, idx.HasPrefix("fox"))
}
