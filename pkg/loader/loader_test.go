package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"contract-workflow-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextLoader_SplitsPages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "contract.txt", "Page one\n\fPage two\f\n  \f")

	segments, err := NewTextLoader("").Load(context.Background(), dto.DocumentHandle{URI: "file://" + path})

	require.NoError(t, err)
	assert.Equal(t, []string{"Page one", "Page two"}, segments)
}

func TestTextLoader_RelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lease.txt", "Lease agreement")

	segments, err := NewTextLoader(dir).Load(context.Background(), dto.DocumentHandle{URI: "lease.txt", ContentType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Lease agreement"}, segments)
}

func TestTextLoader_Rejects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", " \n ")

	tests := []struct {
		name   string
		handle dto.DocumentHandle
	}{
		{"escape base dir", dto.DocumentHandle{URI: "../etc/passwd"}},
		{"remote scheme", dto.DocumentHandle{URI: "https://example.com/contract.txt"}},
		{"binary content type", dto.DocumentHandle{URI: "empty.txt", ContentType: "application/pdf"}},
		{"no text", dto.DocumentHandle{URI: "empty.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTextLoader(dir).Load(context.Background(), tt.handle)
			assert.ErrorIs(t, err, ErrUnsupportedDocument)
		})
	}
}
