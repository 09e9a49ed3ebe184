package asm

import (
	"fmt"
	"strconv"
)

const cPrefix uint16 = 0b111 << 13

// Encode returns the 16-bit machine word for an instruction.
func Encode(ins Instruction) (uint16, error) {
	switch v := ins.(type) {
	case AInstruction:
		if v.Value > MaxAddress {
			return 0, &Error{Token: strconv.Itoa(int(v.Value)), Err: ErrValueOutOfRange}
		}
		return v.Value, nil
	case CInstruction:
		return encodeC(v)
	case nil:
		return 0, fmt.Errorf("encode: nil instruction")
	default:
		return 0, fmt.Errorf("encode: unsupported instruction %T", ins)
	}
}

func encodeC(c CInstruction) (uint16, error) {
	if !c.Comp.valid() {
		return 0, &Error{Token: c.Comp.String(), Err: ErrInvalidMnemonic}
	}
	if int(c.Dest) >= len(destMnemonics) {
		return 0, &Error{Token: c.Dest.String(), Err: ErrInvalidMnemonic}
	}
	if int(c.Jump) >= len(jumpMnemonics) {
		return 0, &Error{Token: c.Jump.String(), Err: ErrInvalidMnemonic}
	}

	return cPrefix |
		compTable[c.Comp].code<<6 |
		uint16(c.Dest)<<3 |
		uint16(c.Jump), nil
}

// Format renders a machine word as 16 binary digits, most significant first.
func Format(word uint16) string {
	return fmt.Sprintf("%016b", word)
}

// EncodeText is Encode followed by Format.
func EncodeText(ins Instruction) (string, error) {
	word, err := Encode(ins)
	if err != nil {
		return "", err
	}
	return Format(word), nil
}
