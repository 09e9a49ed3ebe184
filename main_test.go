package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hackasm/pkg/asm"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestStdinToStdout(t *testing.T) {
	stdout, _, err := execute(t, "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	want := "0000000000000010\n1110110000010000\n0000000000000011\n1110000010010000\n0000000000000000\n1110001100001000\n"
	if stdout != want {
		t.Errorf("stdout = %q; want %q", stdout, want)
	}
}

func TestDashReadsStdin(t *testing.T) {
	stdout, _, err := execute(t, "@7\n", "-")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "0000000000000111\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestFileToDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Prog.asm")
	if err := os.WriteFile(in, []byte("@foo\nM=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "", in)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q; want nothing", stdout)
	}
	if !strings.Contains(stderr, "assembled 2 instructions") {
		t.Errorf("stderr = %q", stderr)
	}

	got, err := os.ReadFile(filepath.Join(dir, "Prog.hack"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "0000000000010000\n1110111111001000\n" {
		t.Errorf("Prog.hack = %q", got)
	}
}

func TestExplicitOutputPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "custom.txt")
	if _, _, err := execute(t, "0;JMP\n", "-o", out); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "1110101010000111\n" {
		t.Errorf("custom.txt = %q", got)
	}
}

func TestFailureWritesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Bad.asm")
	if err := os.WriteFile(in, []byte("@1\nX=A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "", in)
	if !errors.Is(err, asm.ErrInvalidMnemonic) {
		t.Fatalf("err = %v; want ErrInvalidMnemonic", err)
	}
	if !strings.Contains(err.Error(), "assembly failed") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %q", err.Error())
	}
	if _, statErr := os.Stat(filepath.Join(dir, "Bad.hack")); !os.IsNotExist(statErr) {
		t.Errorf("Bad.hack should not exist, stat err = %v", statErr)
	}

	stdout, _, err := execute(t, "@1\nD=Z\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if stdout != "" {
		t.Errorf("stdout = %q; want nothing on failure", stdout)
	}
}

func TestMissingInputFile(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "nope.asm"))
	if err == nil || !strings.Contains(err.Error(), "failed to read input file") {
		t.Errorf("err = %v", err)
	}
}

func TestSymbolsAndShadowWarning(t *testing.T) {
	_, stderr, err := execute(t, "(A1)\n@x\n(A1)\n0;JMP\n", "--symbols")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "warning: label 'A1' on line 3 ignored, already bound to 0") {
		t.Errorf("stderr missing shadow warning:\n%s", stderr)
	}
	for _, want := range []string{"x", "KBD", "SCREEN", "A1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("symbol dump missing %s:\n%s", want, stderr)
		}
	}
}

func TestRunFlag(t *testing.T) {
	_, stderr, err := execute(t, "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n", "--run")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "run complete (halted after 6 cycles)") || !strings.Contains(stderr, "R0=5") {
		t.Errorf("stderr = %q", stderr)
	}

	_, stderr, err = execute(t, "(L)\n@L\nD;JEQ\n", "--run", "--max-cycles", "10")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "cycle limit reached after 10 cycles") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTooManyArgs(t *testing.T) {
	if _, _, err := execute(t, "", "a.asm", "b.asm"); err == nil {
		t.Error("expected error for two input files")
	}
}
