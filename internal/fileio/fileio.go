// Package fileio reads files into editor lines and writes serialized
// buffers back.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kobzarvs/vedit/internal/config"
)

var ErrNotFound = errors.New("file not found")

// ReadLines returns the file content split into lines with CR/LF removed.
// A trailing newline does not produce an extra empty line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	return SplitLines(data), nil
}

func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// WriteAll replaces the content of path with data, creating the file when
// needed.
func WriteAll(path string, data []byte) (int, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// DetectFiletype names the file type shown in the status line. Configured
// languages win; otherwise the extension without its dot is used.
func DetectFiletype(path string, langs config.Languages) string {
	if path == "" {
		return ""
	}
	if lang := langs.Match(path); lang != nil {
		return lang.Name
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
