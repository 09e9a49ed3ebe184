package cpu

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"
)

func TestHibernateRoundTrip(t *testing.T) {
	c1 := load(t, `
(LOOP)
    @i
    M=M+1
    @SCREEN
    M=-1
    @LOOP
    0;JMP
`)
	c1.RunCycles(13)
	c1.PushKey(130)

	data, err := c1.HibernateToBytes()
	if err != nil {
		t.Fatalf("HibernateToBytes: %v", err)
	}

	c2 := NewCPU()
	if err := c2.RestoreFromBytes(data); err != nil {
		t.Fatalf("RestoreFromBytes: %v", err)
	}

	if c2.A != c1.A || c2.D != c1.D || c2.PC != c1.PC {
		t.Errorf("registers: expected A=%d D=%d PC=%d, got A=%d D=%d PC=%d", c1.A, c1.D, c1.PC, c2.A, c2.D, c2.PC)
	}
	if c2.Cycles != c1.Cycles || c2.Halted != c1.Halted {
		t.Errorf("cycles/halted: expected %d/%v, got %d/%v", c1.Cycles, c1.Halted, c2.Cycles, c2.Halted)
	}
	if c2.ProgramLength() != c1.ProgramLength() {
		t.Errorf("ProgramLength: expected %d, got %d", c1.ProgramLength(), c2.ProgramLength())
	}
	if c2.ROM != c1.ROM {
		t.Error("ROM differs after restore")
	}
	if c2.RAM != c1.RAM {
		t.Error("RAM differs after restore")
	}
	if c2.Read(KBD) != 130 {
		t.Errorf("KBD: expected 130, got %d", c2.Read(KBD))
	}

	// Both machines continue identically.
	c1.RunCycles(50)
	c2.RunCycles(50)
	if c2.RAM[16] != c1.RAM[16] || c2.PC != c1.PC {
		t.Errorf("diverged after restore: RAM[16] %d vs %d, PC %d vs %d", c1.RAM[16], c2.RAM[16], c1.PC, c2.PC)
	}
}

func TestHibernateArchiveLayout(t *testing.T) {
	c := NewCPU()
	if err := c.LoadROM([]uint16{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	data, err := c.HibernateToBytes()
	if err != nil {
		t.Fatalf("HibernateToBytes: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	sizes := map[string]uint64{}
	for _, f := range r.File {
		sizes[f.Name] = f.UncompressedSize64
	}
	if _, ok := sizes["state.json"]; !ok {
		t.Error("missing state.json")
	}
	if sizes["ram.bin"] != uint64(RAMSize*2) {
		t.Errorf("ram.bin: expected %d bytes, got %d", RAMSize*2, sizes["ram.bin"])
	}
	if sizes["rom.bin"] != 6 {
		t.Errorf("rom.bin: expected 6 bytes, got %d", sizes["rom.bin"])
	}
}

func TestHibernateFile(t *testing.T) {
	c1 := load(t, "@42\nD=A\n@R1\nM=D")
	c1.Run()

	path := filepath.Join(t.TempDir(), "state.zip")
	if err := c1.HibernateToFile(path); err != nil {
		t.Fatalf("HibernateToFile: %v", err)
	}

	c2 := NewCPU()
	if err := c2.RestoreFromFile(path); err != nil {
		t.Fatalf("RestoreFromFile: %v", err)
	}
	if c2.RAM[1] != 42 || !c2.Halted {
		t.Errorf("expected RAM[1]=42 and halted, got %d and %v", c2.RAM[1], c2.Halted)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	c := NewCPU()
	if err := c.RestoreFromBytes([]byte("not a zip")); err == nil {
		t.Error("expected error for invalid archive")
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	if err := writeZipEntry(zw, "ram.bin", []byte{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.RestoreFromBytes(buf.Bytes()); err == nil {
		t.Error("expected error for archive without state.json")
	}
}
