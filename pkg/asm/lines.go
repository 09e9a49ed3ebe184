package asm

import "strings"

// Line is a source line with comments and surrounding whitespace removed.
type Line struct {
	No    int // 1-based position in the input
	Text  string
	Label bool
}

// Normalize strips "//" comments and surrounding whitespace from every line,
// drops the lines left empty and marks label declarations of the form "(NAME)".
// Whitespace inside a line is kept, so "A M=D" stays an invalid mnemonic
// rather than turning into "AM=D".
func Normalize(lines []string) []Line {
	out := make([]Line, 0, len(lines))
	for i, raw := range lines {
		text := stripComments(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, Line{
			No:    i + 1,
			Text:  text,
			Label: isLabel(text),
		})
	}
	return out
}

// Content returns the lines that become instructions, in order.
func Content(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !l.Label {
			out = append(out, l)
		}
	}
	return out
}

// LabelName returns the name between the brackets of a label line.
func LabelName(l Line) string {
	return l.Text[1 : len(l.Text)-1]
}

func stripComments(line string) string {
	before, _, _ := strings.Cut(line, "//")
	return before
}

func isLabel(text string) bool {
	return len(text) >= 2 && text[0] == '(' && text[len(text)-1] == ')'
}
