package rules

// ZeroWidth are invisible codepoints used to split or hide traversal
// tokens from naive string checks.
var ZeroWidth = map[rune]bool{
	'​': true, // zero width space
	'‌': true, // zero width non-joiner
	'‍': true, // zero width joiner
	'\uFEFF': true, // byte order mark / zero width no-break space
}

// BidiControl are bidirectional formatting controls that can visually
// reorder a filename to disguise its real extension.
var BidiControl = map[rune]bool{
	'‪': true, '‫': true, '‬': true, '‭': true, '‮': true,
	'⁦': true, '⁧': true, '⁨': true, '⁩': true,
}

// DotHomoglyphs render as a period-like glyph but are not U+002E.
var DotHomoglyphs = map[rune]bool{
	'․': true, // one dot leader
	'‥': true, // two dot leader
	'…': true, // horizontal ellipsis
	'．': true, // fullwidth full stop
	'。': true, // ideographic full stop
}

// SlashHomoglyphs render as a forward-slash-like glyph.
var SlashHomoglyphs = map[rune]bool{
	'⁄': true, // fraction slash
	'∕': true, // division slash
	'╱': true, // box drawings light diagonal upper right to lower left
	'⧸': true, // big solidus
	'／': true, // fullwidth solidus
}

// BackslashHomoglyphs render as a backslash-like glyph.
var BackslashHomoglyphs = map[rune]bool{
	'∖': true, // set minus
	'＼': true, // fullwidth reverse solidus
}

// CodePageSeparatorHomoglyphs are currency/punctuation glyphs that some
// legacy code pages map onto a path separator byte.
var CodePageSeparatorHomoglyphs = map[rune]bool{
	'¥': true, // yen sign, maps to '\' in CP932
	'₩': true, // won sign, maps to '\' in CP949/CP1361
	'´': true, // acute accent, maps to '/' in CP1253
}

// Wildcards are shell/glob metacharacters with no legitimate use in a
// filesystem path.
var Wildcards = map[rune]bool{
	'?': true, '*': true,
}
