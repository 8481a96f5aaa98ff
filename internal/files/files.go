// Package files is the collaborator side of the search boundary: it resolves
// glob patterns to an ordered candidate list and reads file text. The engine
// itself never touches the filesystem.
package files

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/CallMeChewy/Finder/internal/engine"
	"github.com/CallMeChewy/Finder/internal/errors"
)

// binarySniffLen bounds how much of a file is inspected for binary content.
const binarySniffLen = 8192

// Resolve walks root and returns the relative paths matching any include
// pattern and no exclude pattern, in deterministic lexical order. Files
// larger than maxFileSize are left out. Zero candidates is reported as
// *errors.NoFilesError so the caller can surface it without treating it as a
// crash.
func Resolve(root string, include, exclude []string, maxFileSize int64) ([]string, error) {
	var paths []string
	fsys := os.DirFS(root)
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !matchAny(include, path) || matchAny(exclude, path) {
			return nil
		}
		if maxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > maxFileSize {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, &errors.NoFilesError{Patterns: include}
	}
	return paths, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadAll reads each path relative to root into an engine input. Unreadable
// or binary files produce an input with Err set; the engine skips those and
// reports the path, so one bad file never aborts a run.
func ReadAll(root string, paths []string) []engine.Input {
	inputs := make([]engine.Input, 0, len(paths))
	for _, path := range paths {
		inputs = append(inputs, read(root, path))
	}
	return inputs
}

func read(root, path string) engine.Input {
	data, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		return engine.Input{Path: path, Err: err}
	}
	if isBinary(data) {
		return engine.Input{Path: path, Err: fmt.Errorf("binary content")}
	}
	if !utf8.Valid(data) {
		return engine.Input{Path: path, Err: fmt.Errorf("not valid UTF-8 text")}
	}
	return engine.Input{Path: path, Text: string(data)}
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
