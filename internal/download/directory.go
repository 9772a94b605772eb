// Package download provides the hand-off targets for rendered documents: a local directory,
// an HTTP response and the artifact table.
package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/offer-composer/internal/document"
)

// artifactMode is the permission of written artifacts
const artifactMode os.FileMode = 0644

// Directory writes artifacts into a directory on disk
type Directory struct {
	Root string
}

// NewDirectory returns a Directory rooted at root
func NewDirectory(root string) *Directory {
	return &Directory{Root: root}
}

// DownloadFile writes content to Root/filename. The file appears atomically: content is
// written to a temp file in the same directory and renamed into place.
func (d *Directory) DownloadFile(ctx context.Context, filename string, content []byte, _ string) (document.DownloadResult, error) {
	if err := ctx.Err(); err != nil {
		return document.DownloadResult{}, err
	}
	name, err := cleanFilename(filename)
	if err != nil {
		return document.DownloadResult{}, err
	}

	if err := os.MkdirAll(d.Root, 0755); err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to create output directory %s: %w", d.Root, err)
	}

	tmp, err := os.CreateTemp(d.Root, "."+name+".*")
	if err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return document.DownloadResult{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	// CreateTemp opens with 0600
	if err := tmp.Chmod(artifactMode); err != nil {
		_ = tmp.Close()
		return document.DownloadResult{}, fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to close %s: %w", name, err)
	}

	path := filepath.Join(d.Root, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	return document.DownloadResult{Succeeded: true, Location: path}, nil
}

// cleanFilename rejects names that would escape the target directory
func cleanFilename(filename string) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) || name == ".." || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("invalid artifact filename %q", filename)
	}
	if name != filename {
		return "", fmt.Errorf("artifact filename %q must not contain a path", filename)
	}
	return name, nil
}
