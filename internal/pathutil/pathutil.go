// Package pathutil holds the path glue around the cache core:
// canonicalization of user input, tilde abbreviation for display, and the
// existence checks that gate what gets cached.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateMode selects which filesystem object types an entry may name.
type ValidateMode string

const (
	// ModeAny accepts anything that exists.
	ModeAny ValidateMode = "any"

	// ModeFile accepts regular files only.
	ModeFile ValidateMode = "file"

	// ModeDir accepts directories only.
	ModeDir ValidateMode = "dir"
)

// ErrBadMode is returned when a validate mode string is not one of
// any, file or dir.
var ErrBadMode = errors.New("invalid type filter")

// ParseMode validates a mode string from a CLI flag.
func ParseMode(s string) (ValidateMode, error) {
	switch ValidateMode(s) {
	case ModeAny, ModeFile, ModeDir:
		return ValidateMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want any, file or dir)", ErrBadMode, s)
	}
}

// Canonicalize resolves path to an absolute path with all symlinks
// evaluated. The target must exist; a dangling path returns the
// underlying stat error.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// Accepts reports whether the object at path exists and matches mode.
// It never returns an error: anything unstattable is simply not accepted.
func Accepts(path string, mode ValidateMode) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	switch mode {
	case ModeFile:
		return info.Mode().IsRegular()
	case ModeDir:
		return info.IsDir()
	default:
		return true
	}
}

// Abbreviate rewrites path relative to home using the conventional tilde
// shorthand: home itself becomes "~", descendants become "~/rest". Paths
// outside home (and the degenerate empty home) pass through unchanged.
func Abbreviate(home, path string) string {
	if home == "" {
		return path
	}

	if path == home {
		return "~"
	}

	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}

	return path
}
