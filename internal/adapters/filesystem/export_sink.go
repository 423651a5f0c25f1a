// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/dispatchboard/internal/ports/secondary"
)

// ExportSink implements secondary.ExportSink by writing shift exports into
// a local directory.
type ExportSink struct {
	dir string
}

// NewExportSink creates a sink rooted at dir, creating it if needed.
// If dir is empty, defaults to ~/.board/exports.
func NewExportSink(dir string) (*ExportSink, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".board", "exports")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &ExportSink{dir: dir}, nil
}

// Dir returns the directory exports are written to.
func (s *ExportSink) Dir() string {
	return s.dir
}

// Put writes the file and returns its path. An existing file is never
// overwritten; a numeric suffix is added instead.
func (s *ExportSink) Put(ctx context.Context, file *secondary.ExportFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := sanitizeName(file.Name)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	path := filepath.Join(s.dir, name)
	for i := 1; ; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			path = filepath.Join(s.dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create export file: %w", err)
		}
		if _, err := f.Write(file.Data); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close export file: %w", err)
		}
		return path, nil
	}
}

// sanitizeName keeps exports inside the sink directory.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("export file name is empty")
	}
	base := filepath.Base(filepath.Clean("/" + filepath.ToSlash(name)))
	if base == "/" || base == "." || base == ".." {
		return "", fmt.Errorf("invalid export file name %q", name)
	}
	return base, nil
}

var _ secondary.ExportSink = (*ExportSink)(nil)
