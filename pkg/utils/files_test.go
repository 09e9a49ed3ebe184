package utils

import (
	"path/filepath"
	"testing"
)

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"Max.asm", ".hack", "Max.hack"},
		{"dir/Pong.asm", ".hack", "dir/Pong.hack"},
		{"noext", ".hack", "noext.hack"},
		{"a.b.asm", ".png", "a.b.png"},
	}
	for _, tc := range tests {
		if got := ReplaceExt(tc.path, tc.ext); got != tc.want {
			t.Errorf("ReplaceExt(%q, %q) = %q; want %q", tc.path, tc.ext, got, tc.want)
		}
	}
}

func TestIsHackFile(t *testing.T) {
	if !IsHackFile("prog.hack") || !IsHackFile("PROG.HACK") {
		t.Error("expected .hack files to be recognized")
	}
	if IsHackFile("prog.asm") || IsHackFile("hack") {
		t.Error("expected non-.hack files to be rejected")
	}
}

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("some/../file.asm")
	if err != nil {
		t.Fatalf("GetPathInfo: %v", err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("fullPath %q is not absolute", full)
	}
	if filepath.Base(full) != "file.asm" {
		t.Errorf("fullPath %q: expected base file.asm", full)
	}
	if dir != filepath.Dir(full) {
		t.Errorf("parentDir = %q; want %q", dir, filepath.Dir(full))
	}
}
