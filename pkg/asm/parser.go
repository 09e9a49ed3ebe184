package asm

import (
	"strconv"
	"strings"
)

// ParseInstruction turns one normalized content line into an instruction.
// Address instruction targets are resolved against table; a nil table only
// accepts numeric targets.
func ParseInstruction(line string, table *SymbolTable) (Instruction, error) {
	if strings.HasPrefix(line, "@") {
		return parseAInstruction(line[1:], table)
	}
	return parseCInstruction(line)
}

func parseAInstruction(target string, table *SymbolTable) (Instruction, error) {
	if isLiteral(target) {
		value, err := strconv.ParseUint(strings.TrimPrefix(target, "+"), 10, 64)
		if err != nil || value > MaxAddress {
			return nil, &Error{Token: target, Err: ErrValueOutOfRange}
		}
		return AInstruction{Value: uint16(value)}, nil
	}

	if table == nil {
		return nil, &Error{Token: target, Err: ErrUnresolvedSymbol}
	}
	addr, ok := table.Lookup(target)
	if !ok {
		return nil, &Error{Token: target, Err: ErrUnresolvedSymbol}
	}
	if addr > MaxAddress {
		return nil, &Error{Token: target, Err: ErrValueOutOfRange}
	}
	return AInstruction{Value: addr}, nil
}

func parseCInstruction(line string) (Instruction, error) {
	var c CInstruction

	rest := line
	if destText, after, found := strings.Cut(line, "="); found {
		dest, ok := destByMnemonic[destText]
		if !ok {
			return nil, &Error{Token: destText, Err: ErrInvalidMnemonic}
		}
		c.Dest = dest
		rest = after
	}

	compText, jumpText, hasJump := strings.Cut(rest, ";")
	if hasJump {
		jump, ok := jumpByMnemonic[jumpText]
		if !ok {
			return nil, &Error{Token: jumpText, Err: ErrInvalidMnemonic}
		}
		c.Jump = jump
	}

	comp, ok := compByMnemonic[compText]
	if !ok {
		return nil, &Error{Token: compText, Err: ErrInvalidMnemonic}
	}
	c.Comp = comp

	return c, nil
}
