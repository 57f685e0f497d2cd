package pathguard

import (
	"fmt"
	"strings"

	"github.com/kitstream/pathguard/internal/rules"
)

// NameCheck validates a project/identifier name intended to become a
// filesystem path component: length in [1, 64], characters restricted to
// [A-Za-z0-9_-], first and last character not '-' or '_', and not a
// reserved name (case-insensitive). No extension is stripped: a name with
// an extension contains '.', which the character-class check rejects first.
func NameCheck(name string) (string, error) {
	if len(name) < rules.NameMinLength || len(name) > rules.NameMaxLength {
		return "", &Error{
			Kind:   NameSyntaxError,
			Rule:   "length",
			Detail: fmt.Sprintf("name length must be between %d and %d characters, got %d", rules.NameMinLength, rules.NameMaxLength, len(name)),
		}
	}

	for _, r := range name {
		if !isNameChar(r) {
			return "", &Error{Kind: NameSyntaxError, Rule: "character-class", Detail: fmt.Sprintf("name %q contains disallowed character %q", name, r)}
		}
	}

	first, last := rune(name[0]), rune(name[len(name)-1])
	if first == '-' || first == '_' {
		return "", &Error{Kind: NameSyntaxError, Rule: "start-character", Detail: fmt.Sprintf("name %q may not start with %q", name, first)}
	}
	if last == '-' || last == '_' {
		return "", &Error{Kind: NameSyntaxError, Rule: "end-character", Detail: fmt.Sprintf("name %q may not end with %q", name, last)}
	}

	if rules.ReservedNames[strings.ToUpper(name)] {
		return "", &Error{Kind: ReservedNameError, Rule: "reserved-name", Detail: fmt.Sprintf("name %q is a reserved system name", name)}
	}

	return name, nil
}

func isNameChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}
