package types

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// FileRef is a handle to a user-provided file. It is created on intake and
// never mutated afterwards; removal from the uploader simply drops the handle.
type FileRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"type"`

	// open yields the file payload. May be nil for synthetic refs used in
	// tests, in which case Open returns an error.
	open func() (io.ReadCloser, error)
}

// NewFileRef builds a FileRef from explicit metadata and a payload accessor.
func NewFileRef(name string, size int64, mimeType string, open func() (io.ReadCloser, error)) *FileRef {
	return &FileRef{
		ID:       uuid.New().String(),
		Name:     name,
		Size:     size,
		MimeType: mimeType,
		open:     open,
	}
}

// FileRefFromPath builds a FileRef for a file on disk. The MIME type is
// detected from content, falling back to the extension when detection fails.
func FileRefFromPath(path string) (*FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mime := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		mime = mt.String()
		// DetectFile returns "type; charset=..." for text; keep the bare type.
		if i := strings.IndexByte(mime, ';'); i >= 0 {
			mime = strings.TrimSpace(mime[:i])
		}
	}
	if mime == "" || mime == "application/octet-stream" {
		if byExt := mimeByExtension(path); byExt != "" {
			mime = byExt
		}
	}

	return &FileRef{
		ID:       uuid.New().String(),
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: mime,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Open returns a reader over the file payload. The caller closes it.
func (f *FileRef) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("no payload accessor for %s", f.Name)
	}
	return f.open()
}

// Ext returns the lowercase extension of the file name, including the dot.
func (f *FileRef) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// IsPDFTyped reports whether the ref claims to be a PDF, by MIME type or
// extension. Only PDF-typed refs go through the signature sniff.
func (f *FileRef) IsPDFTyped() bool {
	return f.MimeType == "application/pdf" || f.Ext() == ".pdf"
}

func (f *FileRef) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", f.Name, f.Size, f.MimeType)
}

// mimeByExtension covers the handful of types the product deals with when
// content detection is unavailable.
func mimeByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return ""
	}
}

// TotalSize sums the sizes of the given refs.
func TotalSize(refs []*FileRef) int64 {
	var total int64
	for _, r := range refs {
		total += r.Size
	}
	return total
}
