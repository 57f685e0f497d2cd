package scanner

import (
	"fmt"
	"strings"
	"unicode"
)

// internalWhitespace are codepoints that are never legitimate anywhere in
// a path component: they exist to split traversal tokens (". .", ".\t.")
// or to defeat naive prefix/suffix checks.
var internalWhitespace = map[rune]string{
	'\t': "tab",
	'\r': "carriage return",
	'\n': "line feed",
	'\f': "form feed",
	'\v': "vertical tab",
}

func whitespaceGroup() Group {
	return Group{
		Title: "whitespace & normalisation",
		Rules: []Rule{
			{Name: "leading-trailing-whitespace", Kind: Whitespace, Check: checkLeadingTrailingWhitespace},
			{Name: "internal-control-whitespace", Kind: Whitespace, Check: checkInternalWhitespace},
			{Name: "double-space", Kind: Whitespace, Check: checkDoubleSpace},
		},
	}
}

func checkLeadingTrailingWhitespace(s string) *Violation {
	if s == "" {
		return nil
	}
	trimmed := strings.TrimFunc(s, unicode.IsSpace)
	if trimmed != s {
		side := "leading"
		if len(s) > 0 && !unicode.IsSpace(rune(s[0])) {
			side = "trailing"
		}
		return &Violation{Kind: Whitespace, Detail: fmt.Sprintf("%s whitespace in %q", side, s)}
	}
	return nil
}

func checkInternalWhitespace(s string) *Violation {
	for _, r := range s {
		if name, bad := internalWhitespace[r]; bad {
			return &Violation{Kind: Whitespace, Detail: fmt.Sprintf("internal %s character in %q", name, s)}
		}
	}
	return nil
}

func checkDoubleSpace(s string) *Violation {
	if strings.Contains(s, "  ") {
		return &Violation{Kind: Whitespace, Detail: fmt.Sprintf("multiple consecutive spaces in %q", s)}
	}
	return nil
}
