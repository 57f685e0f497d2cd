package scanner

import (
	"fmt"
	"unicode"

	"golang.org/x/text/width"

	"github.com/kitstream/pathguard/internal/rules"
)

func unicodeGroup() Group {
	return Group{
		Title: "dangerous Unicode",
		Rules: []Rule{
			{Name: "dangerous-unicode", Kind: Unicode, Check: checkDangerousUnicode},
		},
	}
}

// checkDangerousUnicode walks s codepoint by codepoint, applying the
// zero-width / bidi / homoglyph / full-width / combining-mark / wildcard
// checks from rule group 4 in a single pass.
func checkDangerousUnicode(s string) *Violation {
	var prev rune
	for i, r := range s {
		switch {
		case rules.ZeroWidth[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("zero-width character U+%04X detected", r)}
		case rules.BidiControl[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("bidirectional control character U+%04X detected", r)}
		case rules.DotHomoglyphs[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("dot homoglyph U+%04X detected", r)}
		case rules.SlashHomoglyphs[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("slash homoglyph U+%04X detected", r)}
		case rules.BackslashHomoglyphs[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("backslash homoglyph U+%04X detected", r)}
		case rules.CodePageSeparatorHomoglyphs[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("code-page separator homoglyph U+%04X detected", r)}
		case rules.Wildcards[r]:
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("wildcard character %q detected", r)}
		case isFullWidthForm(r):
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("full-width Unicode character U+%04X detected", r)}
		case i > 0 && prev == '.' && unicode.Is(unicode.Mn, r):
			return &Violation{Kind: Unicode, Detail: fmt.Sprintf("combining mark U+%04X immediately following '.'", r)}
		}
		prev = r
	}
	return nil
}

// isFullWidthForm reports whether r has the East Asian Width class
// Fullwidth, using the ecosystem's East-Asian-width classifier rather than
// a hand-rolled range table. That class covers the fullwidth ASCII variant
// forms (U+FF01-U+FF5E) and also U+3000, U+FF5F-U+FF60 and U+FFE0-U+FFE6.
func isFullWidthForm(r rune) bool {
	return width.LookupRune(r).Kind() == width.EastAsianFullwidth
}
