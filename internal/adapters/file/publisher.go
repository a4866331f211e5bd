package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Output is one file of a publication. Render writes the full file content.
type Output struct {
	Path   string
	Render func(w io.Writer) error
}

// Publisher writes a set of output files so that a failed run leaves no partial output.
// Every file is rendered into a temporary sibling and synced before any of them is renamed.
type Publisher struct{}

// New creates a Publisher.
func New() *Publisher {
	return &Publisher{}
}

type staged struct {
	tmpPath  string
	destPath string
}

// Publish renders every output and then moves them into place.
// If any render fails, no destination file is created or modified.
func (p *Publisher) Publish(ctx context.Context, outputs ...Output) error {
	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		if out.Path == "" {
			return fmt.Errorf("output path cannot be empty")
		}
		abs, err := filepath.Abs(out.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", out.Path, err)
		}
		if seen[abs] {
			return fmt.Errorf("output %s listed twice", out.Path)
		}
		seen[abs] = true
	}

	var files []staged
	// Cleanup temp files in case of failure. Renamed ones are already gone.
	defer func() {
		for _, f := range files {
			_ = os.Remove(f.tmpPath)
		}
	}()

	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmpPath, err := stage(out)
		if tmpPath != "" {
			files = append(files, staged{tmpPath: tmpPath, destPath: out.Path})
		}
		if err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, f := range files {
		if err := replace(f.tmpPath, f.destPath); err != nil {
			return err
		}
	}
	return nil
}

// stage renders an output into a synced temp file next to its destination.
// The temp path is returned even on failure so the caller can remove it.
func stage(out Output) (string, error) {
	dir := filepath.Dir(out.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure output directory: %w", err)
	}

	// Same directory keeps us on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(out.Path)+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if err := out.Render(tmpFile); err != nil {
		return tmpPath, fmt.Errorf("failed to render %s: %w", out.Path, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return tmpPath, fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Close before rename (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return tmpPath, fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmpPath, nil
}

func replace(tmpPath, destPath string) error {
	// On Windows, os.Rename fails if dest exists. We must remove it first.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing %s for overwrite: %w", destPath, err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", destPath, err)
	}
	return nil
}
