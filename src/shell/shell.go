package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/samber/lo"
)

const DefaultExitWord = "exit"

// Querier is the part of a dictionary the shell needs.
type Querier interface {
	Query(prefix string) ([]string, error)
}

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Shell reads partial words from In and prints every matching word from Index to Out until the exit word is
// read or input runs out.
type Shell struct {
	Index    Querier
	In       LineReader
	Out      io.Writer
	ExitWord string
}

func (s *Shell) Run() error {
	exitWord := s.ExitWord
	if exitWord == "" {
		exitWord = DefaultExitWord
	}
	for {
		line, err := s.In.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			// ^C on a partly typed line discards it
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read input: %w", err)
		}
		for _, token := range strings.Fields(line) {
			if token == exitWord {
				return nil
			}
			if err := s.suggest(token); err != nil {
				return err
			}
		}
	}
}

func (s *Shell) suggest(prefix string) error {
	suggestions, err := s.Index.Query(prefix)
	if err != nil {
		_, err = fmt.Fprintf(s.Out, "invalid input: %v\n", err)
		return err
	}
	if len(suggestions) == 0 {
		_, err = fmt.Fprintln(s.Out, "No suggestions found.")
		return err
	}
	lines := lo.Map(suggestions, func(word string, _ int) string {
		return word + "\n"
	})
	_, err = fmt.Fprint(s.Out, "Suggestions:\n"+strings.Join(lines, ""))
	return err
}
