package document

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestBytesLeavesCursorAtStart(t *testing.T) {
	content := []byte("%PDF-1.4 fake body")
	r := bytes.NewReader(content)

	// Simulate a caller that already consumed part of the stream.
	if _, err := r.Seek(5, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	doc := New("a.pdf", r)
	got, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("expected full content, got %q", got)
	}

	rest, _ := io.ReadAll(r)
	if !bytes.Equal(rest, content) {
		t.Fatalf("cursor not reset: next read returned %q", rest)
	}
}

func TestLooksLikePDF(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"header", []byte("%PDF-1.7\n..."), true},
		{"leading junk", append(bytes.Repeat([]byte{' '}, 10), []byte("%PDF-1.3")...), true},
		{"png", []byte("\x89PNG\r\n\x1a\n"), false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromBytes("x", tc.data).LooksLikePDF(); got != tc.want {
				t.Fatalf("LooksLikePDF = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Name != "inv.pdf" {
		t.Fatalf("Name = %q", doc.Name)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
