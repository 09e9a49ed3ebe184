package cpu

import (
	"fmt"
	"strings"
)

// ParseHack reads the textual ".hack" format: one 16-digit binary word per
// line. Blank lines are skipped.
func ParseHack(text string) ([]uint16, error) {
	var words []uint16

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if len(line) != 16 {
			return nil, fmt.Errorf("invalid instruction on line %d: %q is not 16 binary digits", i+1, line)
		}

		var w uint16
		for _, ch := range line {
			switch ch {
			case '0':
				w <<= 1
			case '1':
				w = w<<1 | 1
			default:
				return nil, fmt.Errorf("invalid instruction on line %d: %q is not 16 binary digits", i+1, line)
			}
		}
		words = append(words, w)
	}

	if len(words) > ROMSize {
		return nil, fmt.Errorf("program too large for ROM: %d words > %d words", len(words), ROMSize)
	}
	return words, nil
}
