// Package asm translates Hack assembly into 16-bit Hack machine code.
//
// Translation runs in two passes. The first pass normalizes the source and
// builds the symbol table (labels, then variables). The second pass parses
// every instruction against the finished table and encodes it. Nothing is
// produced unless the whole program translates.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ROMSize is the number of instruction words the Hack ROM holds.
const ROMSize = 32768

type Assembler struct {
	symbols *SymbolTable
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble translates a program and returns its machine words together with
// a source map from ROM address to 1-based source line.
func Assemble(code string) ([]uint16, map[uint16]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) ([]uint16, map[uint16]int, error) {
	return a.AssembleSource(strings.Split(code, "\n"))
}

// AssembleSource is Assemble for a program already split into lines.
func (a *Assembler) AssembleSource(lines []string) ([]uint16, map[uint16]int, error) {
	normalized := Normalize(lines)

	if err := a.pass1(normalized); err != nil {
		return nil, nil, err
	}

	return a.pass2(Content(normalized))
}

// Symbols returns the table built by the last call to Assemble, or nil.
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

func (a *Assembler) pass1(lines []Line) error {
	a.symbols = nil

	table, err := BuildSymbolTable(lines)
	if err != nil {
		return err
	}
	a.symbols = table

	return nil
}

func (a *Assembler) pass2(content []Line) ([]uint16, map[uint16]int, error) {
	if len(content) > ROMSize {
		last := content[ROMSize]
		return nil, nil, &Error{Line: last.No, Token: last.Text, Err: fmt.Errorf("%w: program exceeds %d instructions", ErrValueOutOfRange, ROMSize)}
	}

	program := make([]uint16, 0, len(content))
	sourceMap := make(map[uint16]int, len(content))

	for _, l := range content {
		ins, err := ParseInstruction(l.Text, a.symbols)
		if err != nil {
			return nil, nil, atLine(err, l.No)
		}

		word, err := Encode(ins)
		if err != nil {
			return nil, nil, atLine(err, l.No)
		}

		sourceMap[uint16(len(program))] = l.No
		program = append(program, word)
	}

	return program, sourceMap, nil
}

// AssembleLines translates a program and returns one 16-character binary
// line per instruction.
func AssembleLines(lines []string) ([]string, error) {
	words, _, err := NewAssembler().AssembleSource(lines)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Format(w)
	}
	return out, nil
}

// Translate reads a whole program from r and writes its binary text to w.
// Nothing is written if translation fails.
func Translate(r io.Reader, w io.Writer) error {
	lines, err := ReadLines(r)
	if err != nil {
		return err
	}

	code, err := AssembleLines(lines)
	if err != nil {
		return err
	}

	return WriteLines(w, code)
}

// ReadLines reads r to the end and splits it into lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return lines, nil
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
