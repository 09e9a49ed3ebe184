package asm

import (
	"testing"
)

func TestAssembleSourceMap(t *testing.T) {
	code := `
// Line 2: comment
@10             // Line 3: address 0

(LABEL)         // Line 5: label, no slot
D=A             // Line 6: address 1
    // Line 7: comment only
@LABEL          // Line 8: address 2
0;JMP           // Line 9: address 3
`
	_, sourceMap, err := Assemble(code)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	tests := []struct {
		addr uint16
		line int
	}{
		{0, 3},
		{1, 6},
		{2, 8},
		{3, 9},
	}

	if len(sourceMap) != len(tests) {
		t.Errorf("len(sourceMap) = %d; want %d", len(sourceMap), len(tests))
	}
	for _, tc := range tests {
		if got := sourceMap[tc.addr]; got != tc.line {
			t.Errorf("sourceMap[%d] = %d; want %d", tc.addr, got, tc.line)
		}
	}
}
