// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfsmaller/pkg/types"
)

// MapStore is an in-memory session store giving each test an isolated
// preference namespace.
type MapStore struct {
	Data map[string]string
}

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{Data: map[string]string{}}
}

func (m *MapStore) Set(key, value string) error {
	m.Data[key] = value
	return nil
}

func (m *MapStore) Get(key string) (string, error) {
	return m.Data[key], nil
}

func (m *MapStore) Delete(key string) error {
	delete(m.Data, key)
	return nil
}

// PDFRef builds a file reference whose payload carries a valid PDF header.
func PDFRef(name string, size int64) *types.FileRef {
	return types.NewFileRef(name, size, "application/pdf", func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("%PDF-1.4\n")), nil
	})
}

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
