package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetRelativePaths(t *testing.T) {
	base := t.TempDir()
	fs := NewFileSet(base)

	id := fs.AddVirtual(filepath.Join(base, "src", "Program.cs"), []byte("class A {}\n"))
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("file %d not found", id)
	}
	if f.Path != "src/Program.cs" {
		t.Fatalf("expected relative path, got %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual flag")
	}
	if got, ok := fs.GetByPath("src/Program.cs"); !ok || got.ID != id {
		t.Fatalf("GetByPath mismatch: %v %v", got, ok)
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet("")
	first := fs.AddVirtual("a.cs", []byte("v1"))
	second := fs.AddVirtual("a.cs", []byte("v2"))
	if first == second {
		t.Fatalf("expected a fresh id for the second version")
	}
	latest, ok := fs.GetByPath("a.cs")
	if !ok || string(latest.Content) != "v2" {
		t.Fatalf("expected latest version, got %+v", latest)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 stored versions, got %d", fs.Len())
	}
	if n := len(fs.Latest()); n != 1 {
		t.Fatalf("expected one latest file, got %d", n)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.cs")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A\r\n{\r\n}\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "class A\n{\n}\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet("")
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.cs")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet("")
	id := fs.AddVirtual("a.cs", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet("")
	f := fs.Get(fs.AddVirtual("a.cs", []byte("first\nsecond\n\nlast")))

	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for n, w := range want {
		if got := f.Line(n); got != w {
			t.Errorf("line %d: got %q want %q", n, got, w)
		}
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("unexpected cover %v", c)
	}
	if !c.Contains(a) || !c.Contains(b) {
		t.Fatalf("cover must contain both spans")
	}
	other := Span{File: 2, Start: 0, End: 1}
	if a.Cover(other) != a {
		t.Fatalf("spans from different files must not merge")
	}
	if !b.Before(a) || a.Before(b) {
		t.Fatalf("ordering mismatch")
	}
}

func TestReplaceExt(t *testing.T) {
	if got := ReplaceExt("src/Models/User.cs", ".ts"); got != "src/Models/User.ts" {
		t.Fatalf("got %q", got)
	}
	if got := ReplaceExt("noext", ".ts"); got != "noext.ts" {
		t.Fatalf("got %q", got)
	}
}
