// Package snapshot discovers locally stored help-center HTML snapshots.
//
// The corpus is a small, fixed set of files supplied on disk. There is no
// crawling and no incremental sync: every ingestion run reads the full
// snapshot directory.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RawDocument is one snapshot file before extraction.
type RawDocument struct {
	// Path is the file's location on disk.
	Path string

	// Content is the raw HTML bytes.
	Content []byte
}

// Loader reads HTML snapshots from a flat directory.
type Loader struct{}

// NewLoader creates a snapshot loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns all HTML documents in dir, ordered by file name so ingestion
// runs are deterministic. Non-HTML files are ignored.
func (l *Loader) Load(ctx context.Context, dir string) ([]RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".html" || ext == ".htm" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	docs := make([]RawDocument, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", path, err)
		}
		docs = append(docs, RawDocument{Path: path, Content: content})
	}
	return docs, nil
}
