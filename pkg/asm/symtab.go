package asm

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// VariableBase is the first RAM address handed out to variables.
	VariableBase uint16 = 16
	// MaxAddress is the largest value an address instruction can carry.
	MaxAddress = 0x7FFF
)

var predefinedSymbols = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 16384,
	"KBD":    24576,
}

// SymbolTable maps symbol names to addresses. It is filled once by
// BuildSymbolTable and only read afterwards.
type SymbolTable struct {
	symbols  map[string]uint16
	shadowed []Symbol
	nextVar  uint16
}

// Symbol is a single table entry.
type Symbol struct {
	Name    string
	Address uint16
	Line    int // set only for shadowed declarations
}

func newSymbolTable() *SymbolTable {
	t := &SymbolTable{
		symbols: make(map[string]uint16, len(predefinedSymbols)+16),
		nextVar: VariableBase,
	}
	for name, addr := range predefinedSymbols {
		t.symbols[name] = addr
	}
	for i := uint16(0); i < 16; i++ {
		t.symbols[fmt.Sprintf("R%d", i)] = i
	}
	return t
}

// BuildSymbolTable runs both symbol passes over normalized lines: labels
// first, then variables. A name that is already bound keeps its first
// address; the rejected rebinding is recorded and reported by Shadowed.
func BuildSymbolTable(lines []Line) (*SymbolTable, error) {
	t := newSymbolTable()

	if err := t.bindLabels(lines); err != nil {
		return nil, err
	}
	if err := t.bindVariables(lines); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *SymbolTable) bindLabels(lines []Line) error {
	var address int

	for _, l := range lines {
		if !l.Label {
			address++
			continue
		}

		name := LabelName(l)
		if address > MaxAddress {
			return &Error{Line: l.No, Token: name, Err: ErrValueOutOfRange}
		}
		if _, exists := t.symbols[name]; exists {
			t.shadowed = append(t.shadowed, Symbol{Name: name, Address: uint16(address), Line: l.No})
			continue
		}
		t.symbols[name] = uint16(address)
	}

	return nil
}

func (t *SymbolTable) bindVariables(lines []Line) error {
	for _, l := range lines {
		if l.Label || l.Text[0] != '@' {
			continue
		}

		target := l.Text[1:]
		if isLiteral(target) {
			continue
		}
		if _, exists := t.symbols[target]; exists {
			continue
		}
		if t.nextVar > MaxAddress {
			return &Error{Line: l.No, Token: target, Err: ErrValueOutOfRange}
		}
		t.symbols[target] = t.nextVar
		t.nextVar++
	}

	return nil
}

// Lookup returns the address bound to name.
func (t *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, ok := t.symbols[name]
	return addr, ok
}

func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// Shadowed lists label declarations that were ignored because the name was
// already bound, in source order.
func (t *SymbolTable) Shadowed() []Symbol {
	return append([]Symbol(nil), t.shadowed...)
}

// Entries returns every binding ordered by address, then name.
func (t *SymbolTable) Entries() []Symbol {
	out := make([]Symbol, 0, len(t.symbols))
	for name, addr := range t.symbols {
		out = append(out, Symbol{Name: name, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// isLiteral reports whether an address target is a decimal constant: an
// optional '+' followed by ASCII digits. Every other target is a symbol.
func isLiteral(target string) bool {
	digits := strings.TrimPrefix(target, "+")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
