package rules

import "testing"

func TestDangerousUnicodeTablesAreDisjointFromASCII(t *testing.T) {
	tables := []map[rune]bool{ZeroWidth, BidiControl, DotHomoglyphs, SlashHomoglyphs, BackslashHomoglyphs, CodePageSeparatorHomoglyphs}
	for _, tbl := range tables {
		for r := range tbl {
			if r < 0x80 {
				t.Fatalf("dangerous-Unicode table unexpectedly contains ASCII codepoint U+%04X", r)
			}
		}
	}
}

func TestWildcardsAreASCII(t *testing.T) {
	for r := range Wildcards {
		if r != '?' && r != '*' {
			t.Fatalf("unexpected wildcard rune %q", r)
		}
	}
}

func TestZeroWidthContainsExpectedCodepoints(t *testing.T) {
	for _, r := range []rune{0x200B, 0x200C, 0x200D, 0xFEFF} {
		if !ZeroWidth[r] {
			t.Fatalf("expected U+%04X in ZeroWidth", r)
		}
	}
}

func TestBidiControlContainsExpectedCodepoints(t *testing.T) {
	for _, r := range []rune{0x202A, 0x202B, 0x202C, 0x202D, 0x202E, 0x2066, 0x2067, 0x2068, 0x2069} {
		if !BidiControl[r] {
			t.Fatalf("expected U+%04X in BidiControl", r)
		}
	}
}

func TestDotHomoglyphsContainsExpectedCodepoints(t *testing.T) {
	for _, r := range []rune{0x2024, 0x2025, 0x2026, 0xFF0E, 0x3002} {
		if !DotHomoglyphs[r] {
			t.Fatalf("expected U+%04X in DotHomoglyphs", r)
		}
	}
}
