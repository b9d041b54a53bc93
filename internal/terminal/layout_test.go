package terminal

import (
	"errors"
	"testing"

	"github.com/mattn/go-runewidth"

	"judgy/internal/content"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"a  b", 10, []string{"a b"}},
		{"unbreakable", 5, []string{"unbr…"}},
	}
	for _, test := range tests {
		got := wrap(test.text, test.width)
		if len(got) != len(test.want) {
			t.Errorf("wrap(%q, %d) = %q, want %q", test.text, test.width, got, test.want)
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("wrap(%q, %d) = %q, want %q", test.text, test.width, got, test.want)
				break
			}
			if runewidth.StringWidth(got[i]) > test.width {
				t.Errorf("row %q wider than %d", got[i], test.width)
			}
		}
	}
}

func TestLayoutMarksBlocks(t *testing.T) {
	document := content.Document{
		Title: "T",
		Blocks: []content.Block{
			{Kind: content.KindParagraph, Text: "aaa bbb ccc"},
			{Kind: content.KindButton, Text: "Go"},
			{Kind: content.KindLink, Text: "There"},
		},
	}
	lines := layoutDocument(document, 10)
	var kinds []content.BlockKind
	for _, current := range lines {
		if !current.blank {
			kinds = append(kinds, current.kind)
		}
	}
	want := []content.BlockKind{content.KindHeading, content.KindParagraph, content.KindParagraph, content.KindButton, content.KindLink}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}

	button := lines[len(lines)-4]
	if button.text != "[ Go ]" {
		t.Errorf("button text = %q", button.text)
	}
	if got := button.target(1).TagName(); got != "BUTTON" {
		t.Errorf("target inside button = %q", got)
	}
	if got := button.target(8).TagName(); got != "BODY" {
		t.Errorf("target past button = %q", got)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  command
		err   bool
	}{
		{":score 7", command{kind: commandScore, value: 7}, false},
		{"s -3", command{kind: commandScore, value: -3}, false},
		{":nudge 2.9", command{kind: commandNudge, value: 2}, false},
		{":nudge", command{kind: commandNudge, value: 0}, false},
		{":score nope", command{kind: commandScore, value: 0}, false},
		{":REARM", command{kind: commandRearm}, false},
		{":q", command{kind: commandQuit}, false},
		{":", command{}, true},
		{":dance", command{}, true},
	}
	for _, test := range tests {
		got, err := parseCommand(test.input)
		if test.err {
			if !errors.Is(err, ErrUnknownCommand) {
				t.Errorf("parseCommand(%q) error = %v, want ErrUnknownCommand", test.input, err)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("parseCommand(%q) = %+v, %v; want %+v", test.input, got, err, test.want)
		}
	}
}
