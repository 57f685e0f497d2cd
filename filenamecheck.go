package pathguard

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kitstream/pathguard/internal/rules"
	"github.com/kitstream/pathguard/internal/scanner"
)

// FileNameCheck validates a single filename with no path separators
// permitted, using the package-level default Scanner.
func FileNameCheck(name string) (string, error) {
	return defaultScanner.FileNameCheck(name)
}

// FileNameCheck validates name as a bare filename: no separators, not
// "." or "..", no control characters, and free of every content pattern
// checked by rule groups 1-6 (the special-roots group does not apply — a
// filename has no root).
func (s *Scanner) FileNameCheck(name string) (string, error) {
	if len(name) == 0 || len(name) > rules.FileNameMaxLength {
		return "", &Error{
			Kind:   FileNameStructureError,
			Rule:   "length",
			Detail: fmt.Sprintf("filename length must be between %d and %d characters, got %d", rules.FileNameMinLength, rules.FileNameMaxLength, len(name)),
		}
	}

	if name == "." || name == ".." {
		return "", &Error{Kind: FileNameStructureError, Rule: "dot-name", Detail: fmt.Sprintf("filename %q is not allowed", name)}
	}

	if strings.ContainsAny(name, `/\`) {
		return "", &Error{Kind: FileNameStructureError, Rule: "separator", Detail: fmt.Sprintf("filename %q may not contain a path separator", name)}
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return "", &Error{Kind: FileNameStructureError, Rule: "control-character", Detail: fmt.Sprintf("filename %q contains a control character U+%04X", name, r)}
		}
	}

	if v := scanner.Scan(name, s.fileNameGroups, s.hook); v != nil {
		return "", &Error{Kind: fromScannerKind(v.Kind), Rule: v.Rule, Detail: v.Detail}
	}

	return name, nil
}
