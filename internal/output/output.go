// Package output derives where a cleaned log goes and commits it to disk.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSameOutputPath is returned when the derived output would overwrite the
// input.
var ErrSameOutputPath = errors.New("output path equals input path")

// DerivePath strips one leading underscore from the input's base name.
// A non-empty dir replaces the input's directory, and ext (when non-empty)
// replaces the extension.
func DerivePath(input, dir, ext string) (string, error) {
	base := strings.TrimPrefix(filepath.Base(input), "_")
	if ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}
	out := filepath.Join(dir, base)

	in, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", err
	}
	if in == abs {
		return "", fmt.Errorf("%w: %s", ErrSameOutputPath, input)
	}
	return out, nil
}

// WriteAtomic writes data to path via a temp file + os.Rename, so readers
// never see a partial file.
func WriteAtomic(path string, data []byte) (err error) {
	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bocleaner-*.tmp")
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
