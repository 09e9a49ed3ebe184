package utils

import (
	"fmt"
	"os"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
)

// LoadProgram reads a ".hack" file as machine words, or assembles anything
// else as Hack assembly. The source map is nil for ".hack" input.
func LoadProgram(path string) ([]uint16, map[uint16]int, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if IsHackFile(path) {
		words, err := cpu.ParseHack(string(source))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return words, nil, nil
	}

	words, sourceMap, err := asm.Assemble(string(source))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, sourceMap, nil
}
