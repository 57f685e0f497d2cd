// Package canon resolves a caller-supplied path against a base directory
// and verifies the result is contained within it. This is the only point
// in the whole validator that touches the filesystem.
package canon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResourceError reports that the base directory or one of its ancestors
// could not be resolved for environmental reasons (missing, permission
// denied, not a directory, etc). It is distinct from ContainmentError,
// which reports a successfully resolved path that escapes the base.
type ResourceError struct {
	Detail string
	Err    error
}

func (e *ResourceError) Error() string { return e.Detail }
func (e *ResourceError) Unwrap() error { return e.Err }

// ContainmentError reports that the canonicalised target does not lie
// within the canonicalised base directory.
type ContainmentError struct {
	Detail string
}

func (e *ContainmentError) Error() string { return e.Detail }

// Resolve joins input to base, resolves the result against the real
// filesystem (following symlinks, as the host's canonicalisation does),
// and verifies that the resolved path is a component-wise descendant of
// the resolved base. base must already exist. input need not: Resolve
// walks up to the longest existing ancestor of the joined path and
// canonicalises only that, appending the remaining components lexically.
func Resolve(base, input string) (string, error) {
	canonicalBase, err := canonicalizeExisting(base)
	if err != nil {
		return "", &ResourceError{
			Detail: fmt.Sprintf("resolving base directory %q: %v", base, err),
			Err:    err,
		}
	}

	joined := filepath.Join(canonicalBase, input)

	var canonicalFull string
	if _, err := os.Lstat(joined); err == nil {
		canonicalFull, err = filepath.EvalSymlinks(joined)
		if err != nil {
			return "", &ResourceError{
				Detail: fmt.Sprintf("resolving %q: %v", joined, err),
				Err:    err,
			}
		}
	} else {
		parent, tail, err := longestExistingAncestor(joined)
		if err != nil {
			return "", &ResourceError{
				Detail: fmt.Sprintf("no existing ancestor for %q: %v", joined, err),
				Err:    err,
			}
		}
		canonicalParent, err := filepath.EvalSymlinks(parent)
		if err != nil {
			return "", &ResourceError{
				Detail: fmt.Sprintf("resolving parent %q: %v", parent, err),
				Err:    err,
			}
		}
		canonicalFull = filepath.Join(append([]string{canonicalParent}, tail...)...)
	}

	if !contains(canonicalBase, canonicalFull) {
		return "", &ContainmentError{
			Detail: fmt.Sprintf("%q resolves outside base directory %q", canonicalFull, canonicalBase),
		}
	}

	return canonicalFull, nil
}

func canonicalizeExisting(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// longestExistingAncestor walks up from path until it finds a directory
// that exists, returning that directory and the component tail (in
// root-to-leaf order) that must be re-appended lexically.
func longestExistingAncestor(path string) (string, []string, error) {
	var tail []string
	current := path
	for {
		if _, err := os.Lstat(current); err == nil {
			return current, tail, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil, fmt.Errorf("no existing ancestor found for %q", path)
		}
		tail = append([]string{filepath.Base(current)}, tail...)
		current = parent
	}
}

// contains reports whether full is a component-wise descendant of base:
// full == base, or full begins with base followed by a path separator.
// A byte-prefix comparison alone is insufficient — "/var/app/uploads" is
// a byte prefix of "/var/app/uploads-other" but does not contain it.
func contains(base, full string) bool {
	if base == full {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(base, sep) {
		base += sep
	}
	return strings.HasPrefix(full, base)
}
