// Package fsops reads source buffers and writes assistant results through an afero filesystem.
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// WriteMode selects how a result lands in its output file.
type WriteMode string

const (
	WriteModeWrite  WriteMode = "write"
	WriteModeAppend WriteMode = "append"
)

const (
	filePermissions            = 0o644
	directoryPermissions       = 0o755
	readSourceErrorFormat      = "read source %s: %w"
	ensureDirectoryErrorFormat = "create directory for %s: %w"
	writeResultErrorFormat     = "write result %s: %w"
	unknownWriteModeFormat     = "%w: %q"
)

var ErrUnknownWriteMode = errors.New("unknown write mode")

// ParseWriteMode accepts "write" or "append"; an empty value means write.
func ParseWriteMode(value string) (WriteMode, error) {
	switch WriteMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", WriteModeWrite:
		return WriteModeWrite, nil
	case WriteModeAppend:
		return WriteModeAppend, nil
	default:
		return "", fmt.Errorf(unknownWriteModeFormat, ErrUnknownWriteMode, value)
	}
}

type Store struct {
	Fs afero.Fs
}

func NewOS() Store { return Store{Fs: afero.NewOsFs()} }

// NewMem is backed by memory and used by tests.
func NewMem() Store { return Store{Fs: afero.NewMemMapFs()} }

func (store Store) ReadSource(path string) (string, error) {
	content, readErr := afero.ReadFile(store.Fs, filepath.Clean(path))
	if readErr != nil {
		return "", fmt.Errorf(readSourceErrorFormat, path, readErr)
	}
	return string(content), nil
}

// WriteResult stores text at path, creating parent directories. Append separates the new
// text from existing content with one blank line.
func (store Store) WriteResult(path string, text string, mode WriteMode) error {
	cleanPath := filepath.Clean(path)
	if err := store.Fs.MkdirAll(filepath.Dir(cleanPath), directoryPermissions); err != nil {
		return fmt.Errorf(ensureDirectoryErrorFormat, path, err)
	}

	content := ensureTrailingNewline(text)
	switch mode {
	case WriteModeWrite:
		if err := afero.WriteFile(store.Fs, cleanPath, []byte(content), filePermissions); err != nil {
			return fmt.Errorf(writeResultErrorFormat, path, err)
		}
		return nil
	case WriteModeAppend:
		existing, readErr := afero.ReadFile(store.Fs, cleanPath)
		if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
			return fmt.Errorf(writeResultErrorFormat, path, readErr)
		}
		combined := string(existing)
		if strings.TrimSpace(combined) != "" {
			combined = strings.TrimRight(combined, "\n") + "\n\n" + content
		} else {
			combined = content
		}
		if err := afero.WriteFile(store.Fs, cleanPath, []byte(combined), filePermissions); err != nil {
			return fmt.Errorf(writeResultErrorFormat, path, err)
		}
		return nil
	default:
		return fmt.Errorf(unknownWriteModeFormat, ErrUnknownWriteMode, string(mode))
	}
}

func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
