package asm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	raw := []string{
		"// header comment",
		"",
		"   @R0   // load",
		"\tD=M",
		"(LOOP) // label",
		"   ",
		"0 ; JMP",
	}

	want := []Line{
		{No: 3, Text: "@R0"},
		{No: 4, Text: "D=M"},
		{No: 5, Text: "(LOOP)", Label: true},
		{No: 7, Text: "0 ; JMP"},
	}

	got := Normalize(raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v; want %+v", got, want)
	}

	content := Content(got)
	if len(content) != 3 {
		t.Errorf("Content returned %d lines; want 3", len(content))
	}
	for _, l := range content {
		if l.Label {
			t.Errorf("Content kept label line %q", l.Text)
		}
	}
}

func TestLabelName(t *testing.T) {
	if got := LabelName(Line{Text: "(sys.init$ret:1)", Label: true}); got != "sys.init$ret:1" {
		t.Errorf("LabelName = %q; want %q", got, "sys.init$ret:1")
	}
}

func TestNormalizeTrimsOnlyTheEnds(t *testing.T) {
	got := Normalize([]string{" A M=D \r", "\t@foo bar // x", "( LOOP )"})
	want := []Line{
		{No: 1, Text: "A M=D"},
		{No: 2, Text: "@foo bar"},
		{No: 3, Text: "( LOOP )", Label: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v; want %+v", got, want)
	}
}

func TestIsLabel(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"(LOOP)", true},
		{"()", true},
		{"(", false},
		{"(LOOP", false},
		{"@LOOP", false},
	}
	for _, tc := range tests {
		if got := isLabel(tc.input); got != tc.want {
			t.Errorf("isLabel(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}
}
