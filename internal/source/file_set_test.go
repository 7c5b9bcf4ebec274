package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("frag.c", []byte("int x;"), 0)
	id2 := fs.Add("frag.c", []byte("int y;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	if got := string(fs.Get(id2).Content); got != "int y;" {
		t.Errorf("new version content = %q", got)
	}
	if got := string(fs.Get(id1).Content); got != "int x;" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("Get of unknown id must return nil")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem", []byte("first\nsecond\nthird")))

	for i, want := range []string{"first", "second", "third"} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d = %q, want %q", i+1, got, want)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("line 9 = %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.c")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("int x;\r\nint y;\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Errorf("loaded file must not be virtual")
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.c")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute accent складывается в одну руну
	in := []byte("char* s = \"e\u0301\";")
	out, flags := Normalize(in)
	if flags&FileNormalizedNFC == 0 {
		t.Fatalf("expected NFC flag")
	}
	if string(out) != "char* s = \"\u00e9\";" {
		t.Errorf("got %q", out)
	}

	plain := []byte("int x;")
	out, flags = Normalize(plain)
	if flags != 0 || string(out) != "int x;" {
		t.Errorf("plain input changed: %q flags=%b", out, flags)
	}
}
