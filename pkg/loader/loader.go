// Package loader turns a document handle into text segments.
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"contract-workflow-be/internal/dto"
)

var ErrUnsupportedDocument = errors.New("unsupported document")

// Loader extracts raw text from a document. The first segment is the primary text.
type Loader interface {
	Load(ctx context.Context, handle dto.DocumentHandle) ([]string, error)
}

// TextLoader reads plain-text files from the local filesystem, optionally
// confined to a base directory. Pages are separated by form feeds.
type TextLoader struct {
	baseDir string
}

func NewTextLoader(baseDir string) *TextLoader {
	return &TextLoader{baseDir: baseDir}
}

func (l *TextLoader) Load(ctx context.Context, handle dto.DocumentHandle) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if handle.ContentType != "" && !strings.HasPrefix(handle.ContentType, "text/") {
		return nil, fmt.Errorf("%w: content type %s", ErrUnsupportedDocument, handle.ContentType)
	}

	path, err := l.resolve(handle.URI)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", handle.URI, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupportedDocument, handle.URI)
	}

	var segments []string
	for _, page := range strings.Split(string(raw), "\f") {
		if page = strings.TrimSpace(page); page != "" {
			segments = append(segments, page)
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s has no text", ErrUnsupportedDocument, handle.URI)
	}
	return segments, nil
}

func (l *TextLoader) resolve(uri string) (string, error) {
	path := uri
	if strings.Contains(uri, "://") {
		u, err := url.Parse(uri)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
		}
		if u.Scheme != "file" {
			return "", fmt.Errorf("%w: scheme %s", ErrUnsupportedDocument, u.Scheme)
		}
		path = u.Path
	}

	if l.baseDir == "" {
		return filepath.Clean(path), nil
	}

	base, err := filepath.Abs(l.baseDir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrUnsupportedDocument, uri, l.baseDir)
	}
	return path, nil
}
