// Package files persists evidence uploads after scoring completes. The
// pipeline hands file ownership here and records only the returned path; it
// does not manage storage lifecycle beyond that.
package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists one evidence artifact and returns its reference path.
type Store interface {
	Save(ctx context.Context, submissionID, kind, filename string, content []byte) (string, error)
}

// DiskStore writes evidence under a local root directory. Paths are built
// from the submission ID and artifact kind, never from caller-supplied
// names, so uploads cannot escape the root.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Save(_ context.Context, submissionID, kind, filename string, content []byte) (string, error) {
	ext := sanitizeExt(filepath.Ext(filename))
	path := filepath.Join(s.root, fmt.Sprintf("%s_%s%s", submissionID, kind, ext))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s evidence: %w", kind, err)
	}
	return path, nil
}

func sanitizeExt(ext string) string {
	if ext == "" || len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return strings.ToLower(ext)
}
