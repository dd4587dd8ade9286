package suggestbot_test

import (
	"testing"

	"github.com/kalexmills/prefix-suggest/src/dict"
	"github.com/kalexmills/prefix-suggest/src/suggestbot"
	"github.com/kalexmills/prefix-suggest/src/suggestbot/db"
	"github.com/stretchr/testify/assert"
)

func TestParseRequest(t *testing.T) {
	prefix, err := suggestbot.ParseRequest("  act ")
	assert.NoError(t, err)
	assert.Equal(t, "act", prefix)

	prefix, err = suggestbot.ParseRequest("")
	assert.NoError(t, err)
	assert.Equal(t, "", prefix)

	_, err = suggestbot.ParseRequest("act do")
	assert.Error(t, err)
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		prefix      string
		suggestions []string
		max         int
		expected    string
	}{
		{"z", []string{}, 5, "No suggestions found."},
		{"act", []string{"actor", "actress"}, 5, "Suggestions for `act`:\n- actor\n- actress"},
		{"act", []string{"actor", "actress"}, 0, "Suggestions for `act`:\n- actor\n- actress"},
		{"", []string{"actor", "actress", "banker"}, 2, "Suggestions:\n- actor\n- actress\n...and 1 more"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, suggestbot.FormatSuggestions(tt.prefix, tt.suggestions, tt.max))
	}
}

func TestAnswer(t *testing.T) {
	idx := dict.NewSyncIndex(dict.NewDefaultIndex())
	serve := db.ConfigServeSuggestions
	explain := db.ConfigServeSuggestions | db.ConfigExplainNoSuggestions
	react := db.ConfigServeSuggestions | db.ConfigReactToInvalid

	tests := []struct {
		name     string
		args     string
		flags    db.ConfigFlag
		expected suggestbot.Response
	}{
		{"disabled", "act", 0, suggestbot.Response{}},
		{"disabled ignores invalid", "ACT", db.ConfigReactToInvalid, suggestbot.Response{}},
		{"match", "do", serve, suggestbot.Response{Reply: "Suggestions for `do`:\n- doctor\n- doorman"}},
		{"no match is quiet", "z", serve, suggestbot.Response{}},
		{"no match explained", "z", explain, suggestbot.Response{Reply: "No suggestions found."}},
		{"invalid is quiet", "Do", serve, suggestbot.Response{}},
		{"invalid explained", "Do", explain, suggestbot.Response{Reply: "invalid character 'D' at position 0 in \"Do\"; only lowercase letters a-z are allowed"}},
		{"invalid reacted", "d0", react, suggestbot.Response{React: true}},
		{"too many words reacted", "do fa", react, suggestbot.Response{React: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestbot.Answer(idx, tt.args, tt.flags, 10))
		})
	}
}

func TestAnswer_Truncates(t *testing.T) {
	resp := suggestbot.Answer(dict.NewDefaultIndex(), "", db.ConfigServeSuggestions, 3)
	assert.Equal(t, "Suggestions:\n- actor\n- actress\n- banker\n...and 5 more", resp.Reply)
}
