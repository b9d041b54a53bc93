package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"judgy/internal/content"
	"judgy/internal/core/env"
)

// line is one row of the laid out document.
type line struct {
	text  string
	kind  content.BlockKind
	blank bool
}

// layoutDocument wraps document to width columns. Blocks are separated by
// a blank row.
func layoutDocument(document content.Document, width int) []line {
	if width < 8 {
		width = 8
	}
	lines := []line{{text: document.Title, kind: content.KindHeading}, {blank: true}}
	for _, block := range document.Blocks {
		switch block.Kind {
		case content.KindButton:
			lines = append(lines, line{text: runewidth.Truncate("[ "+block.Text+" ]", width, "…"), kind: block.Kind})
		case content.KindLink:
			lines = append(lines, line{text: runewidth.Truncate("<"+block.Text+">", width, "…"), kind: block.Kind})
		default:
			for _, row := range wrap(block.Text, width) {
				lines = append(lines, line{text: row, kind: block.Kind})
			}
		}
		lines = append(lines, line{blank: true})
	}
	return lines
}

// wrap breaks text into rows no wider than width, splitting on spaces.
// Words wider than a row are truncated.
func wrap(text string, width int) []string {
	var rows []string
	var current strings.Builder
	currentWidth := 0
	for _, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			word = runewidth.Truncate(word, width, "…")
			wordWidth = runewidth.StringWidth(word)
		}
		if currentWidth > 0 && currentWidth+1+wordWidth > width {
			rows = append(rows, current.String())
			current.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}
	if currentWidth > 0 {
		rows = append(rows, current.String())
	}
	return rows
}

// target returns the element under column x of l.
func (l line) target(x int) *env.Target {
	if l.blank || x < 0 || x >= runewidth.StringWidth(l.text) {
		return env.NewTarget("BODY")
	}
	return env.NewTarget(string(l.kind))
}
