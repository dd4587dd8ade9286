package suggestbot

import (
	"fmt"
	"strings"

	"github.com/kalexmills/prefix-suggest/src/suggestbot/db"
	"github.com/samber/lo"
)

// Querier is the part of a dictionary the bot needs.
type Querier interface {
	Query(prefix string) ([]string, error)
}

// Response is what the bot does in reply to a suggestion request. An empty Reply means stay quiet.
type Response struct {
	Reply string
	React bool
}

// ParseRequest extracts the partial word from the text following the command prefix.
func ParseRequest(args string) (string, error) {
	tokens := strings.Fields(args)
	switch len(tokens) {
	case 0:
		return "", nil
	case 1:
		return tokens[0], nil
	default:
		return "", fmt.Errorf("expected a single partial word, got %d", len(tokens))
	}
}

// Answer decides how to respond to a suggestion request with the given features enabled.
func Answer(q Querier, args string, flags db.ConfigFlag, max int) Response {
	if !flags.ServeSuggestions() {
		return Response{}
	}
	prefix, err := ParseRequest(args)
	if err != nil {
		return explainOrReact(err, flags)
	}
	suggestions, err := q.Query(prefix)
	if err != nil {
		return explainOrReact(err, flags)
	}
	if len(suggestions) == 0 && !flags.ExplainNoSuggestions() {
		return Response{}
	}
	return Response{Reply: FormatSuggestions(prefix, suggestions, max)}
}

func explainOrReact(err error, flags db.ConfigFlag) Response {
	if flags.ExplainNoSuggestions() {
		return Response{Reply: err.Error()}
	}
	if flags.ReactToInvalid() {
		return Response{React: true}
	}
	return Response{}
}

// FormatSuggestions renders at most max suggestions as a bulleted list. A max of zero or less shows all of them.
func FormatSuggestions(prefix string, suggestions []string, max int) string {
	if len(suggestions) == 0 {
		return "No suggestions found."
	}
	shown := suggestions
	if max > 0 {
		shown = lo.Subset(suggestions, 0, uint(max))
	}
	lines := lo.Map(shown, func(word string, _ int) string {
		return "- " + word
	})
	var sb strings.Builder
	if prefix == "" {
		sb.WriteString("Suggestions:\n")
	} else {
		fmt.Fprintf(&sb, "Suggestions for `%s`:\n", prefix)
	}
	sb.WriteString(strings.Join(lines, "\n"))
	if more := len(suggestions) - len(shown); more > 0 {
		fmt.Fprintf(&sb, "\n...and %d more", more)
	}
	return sb.String()
}
