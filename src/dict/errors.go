package dict

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter is matched by every error returned for input containing bytes outside 'a'-'z'.
var ErrInvalidCharacter = errors.New("invalid character")

// InvalidCharacterError reports the first byte of Input which is not a lowercase Latin letter.
type InvalidCharacterError struct {
	Input string
	Pos   int
	Char  byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v %q at position %d in %q; only lowercase letters a-z are allowed", ErrInvalidCharacter, e.Char, e.Pos, e.Input)
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

func validate(s string) error {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return &InvalidCharacterError{Input: s, Pos: i, Char: s[i]}
		}
	}
	return nil
}
