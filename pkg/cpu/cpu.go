package cpu

import (
	"fmt"
)

const (
	// ROMSize is the number of 16-bit words in instruction memory.
	ROMSize = 32768
	// ScreenBase is the first word of the memory-mapped screen.
	ScreenBase uint16 = 0x4000
	// ScreenWords is the size of the screen map: 256 rows of 32 words.
	ScreenWords = 8192
	// KBD is the memory-mapped keyboard register.
	KBD uint16 = 0x6000
	// RAMSize covers data memory, the screen and the keyboard register.
	RAMSize = int(KBD) + 1
)

// Instruction bit fields.
const (
	cInstrBit uint16 = 0x8000
	aBit      uint16 = 0x1000
	destA     uint16 = 0x0020
	destD     uint16 = 0x0010
	destM     uint16 = 0x0008
	jumpLT    uint16 = 0x0004
	jumpEQ    uint16 = 0x0002
	jumpGT    uint16 = 0x0001
	jumpMask  uint16 = 0x0007
)

type CPU struct {
	ROM [ROMSize]uint16
	RAM [RAMSize]uint16

	A  uint16
	D  uint16
	PC uint16

	// Cycles counts executed instructions since the last Reset.
	Cycles uint64

	// Halted is set once the program parks itself in a jump-to-self loop
	// or runs past the end of the loaded ROM.
	Halted bool

	romLen int
}

func NewCPU() *CPU {
	return &CPU{}
}

// LoadROM copies a program into instruction memory and resets the CPU.
func (c *CPU) LoadROM(words []uint16) error {
	if len(words) > ROMSize {
		return fmt.Errorf("program too large for ROM: %d words > %d words", len(words), ROMSize)
	}

	c.ROM = [ROMSize]uint16{}
	copy(c.ROM[:], words)
	c.romLen = len(words)
	c.Reset()

	return nil
}

// ProgramLength returns the number of words loaded by LoadROM.
func (c *CPU) ProgramLength() int {
	return c.romLen
}

// Reset restarts execution at address 0. RAM is left untouched, as on the
// real machine.
func (c *CPU) Reset() {
	c.A = 0
	c.D = 0
	c.PC = 0
	c.Cycles = 0
	c.Halted = false
}

// Read returns the word at addr. Addresses past KBD read as zero.
func (c *CPU) Read(addr uint16) uint16 {
	if int(addr) >= RAMSize {
		return 0
	}
	return c.RAM[addr]
}

// Write stores val at addr. The keyboard register and addresses past it
// are read-only to programs.
func (c *CPU) Write(addr uint16, val uint16) {
	if addr >= KBD {
		return
	}
	c.RAM[addr] = val
}

// PushKey presents a key code on the keyboard register.
func (c *CPU) PushKey(code uint16) {
	c.RAM[KBD] = code
}

// ReleaseKey clears the keyboard register.
func (c *CPU) ReleaseKey() {
	c.RAM[KBD] = 0
}

// ALU computes the Hack ALU function selected by the six control bits
// zx nx zy ny f no (bit 5 down to bit 0).
func ALU(x, y uint16, control uint16) uint16 {
	if control&0x20 != 0 {
		x = 0
	}
	if control&0x10 != 0 {
		x = ^x
	}
	if control&0x08 != 0 {
		y = 0
	}
	if control&0x04 != 0 {
		y = ^y
	}

	var out uint16
	if control&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if control&0x01 != 0 {
		out = ^out
	}
	return out
}

func (c *CPU) Step() {
	if c.Halted {
		return
	}
	if int(c.PC) >= c.romLen {
		c.Halted = true
		return
	}

	instr := c.ROM[c.PC]
	c.Cycles++

	if instr&cInstrBit == 0 {
		c.A = instr
		c.PC++
		return
	}

	addrM := c.A
	y := c.A
	if instr&aBit != 0 {
		y = c.Read(addrM)
	}
	out := ALU(c.D, y, (instr>>6)&0x3F)

	if instr&destM != 0 {
		c.Write(addrM, out)
	}
	if instr&destD != 0 {
		c.D = out
	}
	if instr&destA != 0 {
		c.A = out
	}

	neg := out&0x8000 != 0
	zero := out == 0
	jump := (instr&jumpLT != 0 && neg) ||
		(instr&jumpEQ != 0 && zero) ||
		(instr&jumpGT != 0 && !neg && !zero)

	if !jump {
		c.PC++
		return
	}

	if instr&jumpMask == jumpMask && c.isParkingLoop(addrM) {
		c.Halted = true
	}
	c.PC = addrM
}

// isParkingLoop reports whether an unconditional jump from the current PC to
// target can never leave: either it jumps to itself, or target is the
// "@target" instruction right before it.
func (c *CPU) isParkingLoop(target uint16) bool {
	if target == c.PC {
		return true
	}
	return c.PC > 0 && target == c.PC-1 && c.ROM[target] == target
}

// Run executes until the CPU halts. Programs that poll the keyboard never
// halt; use RunCycles for those.
func (c *CPU) Run() {
	for !c.Halted {
		c.Step()
	}
}

// RunCycles executes at most n instructions and returns how many ran.
func (c *CPU) RunCycles(n int) int {
	start := c.Cycles
	for int(c.Cycles-start) < n && !c.Halted {
		c.Step()
	}
	return int(c.Cycles - start)
}
