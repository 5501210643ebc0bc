// Package document holds the uploaded file for the lifetime of one request.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/joseph-ayodele/invoice-parser/constants"
)

// Document is one uploaded file. Its content is never modified; readers
// always leave the shared cursor at the start.
type Document struct {
	Name string

	mu sync.Mutex
	rs io.ReadSeeker
}

// New wraps an already-open reader (multipart file, os.File, ...).
func New(name string, rs io.ReadSeeker) *Document {
	return &Document{Name: name, rs: rs}
}

// FromBytes wraps in-memory content.
func FromBytes(name string, b []byte) *Document {
	return New(name, bytes.NewReader(b))
}

// Open reads path fully into memory so the file handle is not held.
func Open(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return FromBytes(filepath.Base(path), b), nil
}

// Bytes rewinds, reads the whole document, and rewinds again.
func (d *Document) Bytes() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	b, readErr := io.ReadAll(d.rs)
	if _, err := d.rs.Seek(0, io.SeekStart); err != nil && readErr == nil {
		readErr = fmt.Errorf("rewind: %w", err)
	}
	if readErr != nil {
		return nil, readErr
	}
	return b, nil
}

// LooksLikePDF checks for the PDF header within the first KiB, which is
// where readers tolerate it.
func (d *Document) LooksLikePDF() bool {
	b, err := d.Bytes()
	if err != nil {
		return false
	}
	if len(b) > 1024 {
		b = b[:1024]
	}
	return bytes.Contains(b, []byte(constants.PDFMagic))
}
