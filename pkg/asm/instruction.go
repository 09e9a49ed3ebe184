package asm

import "fmt"

// Instruction is either an AInstruction or a CInstruction.
type Instruction interface {
	isInstruction()
}

// AInstruction loads a 15-bit constant or resolved address into A.
type AInstruction struct {
	Value uint16
}

// CInstruction is a dest=comp;jump compute instruction.
type CInstruction struct {
	Dest Dest
	Comp Comp
	Jump Jump
}

func (AInstruction) isInstruction() {}
func (CInstruction) isInstruction() {}

func (a AInstruction) String() string {
	return fmt.Sprintf("@%d", a.Value)
}

func (c CInstruction) String() string {
	s := c.Comp.String()
	if c.Dest != DestNone {
		s = c.Dest.String() + "=" + s
	}
	if c.Jump != JumpNone {
		s += ";" + c.Jump.String()
	}
	return s
}

// Dest selects the registers a compute instruction stores into. The
// constant value is the 3-bit field encoding.
type Dest uint8

const (
	DestNone Dest = iota
	DestM
	DestD
	DestMD
	DestA
	DestAM
	DestAD
	DestAMD
)

var destMnemonics = [...]string{
	DestNone: "",
	DestM:    "M",
	DestD:    "D",
	DestMD:   "MD",
	DestA:    "A",
	DestAM:   "AM",
	DestAD:   "AD",
	DestAMD:  "AMD",
}

func (d Dest) String() string {
	if int(d) < len(destMnemonics) {
		return destMnemonics[d]
	}
	return fmt.Sprintf("Dest(%d)", uint8(d))
}

// Jump is the branch condition of a compute instruction. The constant
// value is the 3-bit field encoding.
type Jump uint8

const (
	JumpNone Jump = iota
	JGT
	JEQ
	JGE
	JLT
	JNE
	JLE
	JMP
)

var jumpMnemonics = [...]string{
	JumpNone: "",
	JGT:      "JGT",
	JEQ:      "JEQ",
	JGE:      "JGE",
	JLT:      "JLT",
	JNE:      "JNE",
	JLE:      "JLE",
	JMP:      "JMP",
}

func (j Jump) String() string {
	if int(j) < len(jumpMnemonics) {
		return jumpMnemonics[j]
	}
	return fmt.Sprintf("Jump(%d)", uint8(j))
}

// Comp is the ALU operation of a compute instruction.
type Comp uint8

const (
	CompZero Comp = iota
	CompOne
	CompMinusOne
	CompD
	CompA
	CompNotD
	CompNotA
	CompMinusD
	CompMinusA
	CompDPlusOne
	CompAPlusOne
	CompDMinusOne
	CompAMinusOne
	CompDPlusA
	CompDMinusA
	CompAMinusD
	CompDAndA
	CompDOrA
	CompM
	CompNotM
	CompMinusM
	CompMPlusOne
	CompMMinusOne
	CompDPlusM
	CompDMinusM
	CompMMinusD
	CompDAndM
	CompDOrM
	numComps
)

// compTable holds the mnemonic and the 7-bit a+c field for every Comp.
var compTable = [numComps]struct {
	mnemonic string
	code     uint16
}{
	CompZero:      {"0", 0b0101010},
	CompOne:       {"1", 0b0111111},
	CompMinusOne:  {"-1", 0b0111010},
	CompD:         {"D", 0b0001100},
	CompA:         {"A", 0b0110000},
	CompNotD:      {"!D", 0b0001101},
	CompNotA:      {"!A", 0b0110001},
	CompMinusD:    {"-D", 0b0001111},
	CompMinusA:    {"-A", 0b0110011},
	CompDPlusOne:  {"D+1", 0b0011111},
	CompAPlusOne:  {"A+1", 0b0110111},
	CompDMinusOne: {"D-1", 0b0001110},
	CompAMinusOne: {"A-1", 0b0110010},
	CompDPlusA:    {"D+A", 0b0000010},
	CompDMinusA:   {"D-A", 0b0010011},
	CompAMinusD:   {"A-D", 0b0000111},
	CompDAndA:     {"D&A", 0b0000000},
	CompDOrA:      {"D|A", 0b0010101},
	CompM:         {"M", 0b1110000},
	CompNotM:      {"!M", 0b1110001},
	CompMinusM:    {"-M", 0b1110011},
	CompMPlusOne:  {"M+1", 0b1110111},
	CompMMinusOne: {"M-1", 0b1110010},
	CompDPlusM:    {"D+M", 0b1000010},
	CompDMinusM:   {"D-M", 0b1010011},
	CompMMinusD:   {"M-D", 0b1000111},
	CompDAndM:     {"D&M", 0b1000000},
	CompDOrM:      {"D|M", 0b1010101},
}

func (c Comp) valid() bool {
	return c < numComps
}

func (c Comp) String() string {
	if c.valid() {
		return compTable[c].mnemonic
	}
	return fmt.Sprintf("Comp(%d)", uint8(c))
}

// Lookup maps from mnemonic text, built from the tables above so the two
// directions cannot drift apart.
var (
	destByMnemonic = make(map[string]Dest, len(destMnemonics))
	jumpByMnemonic = make(map[string]Jump, len(jumpMnemonics))
	compByMnemonic = make(map[string]Comp, numComps)
)

func init() {
	for d, m := range destMnemonics {
		if m != "" {
			destByMnemonic[m] = Dest(d)
		}
	}
	for j, m := range jumpMnemonics {
		if m != "" {
			jumpByMnemonic[m] = Jump(j)
		}
	}
	for c, e := range compTable {
		compByMnemonic[e.mnemonic] = Comp(c)
	}
}
