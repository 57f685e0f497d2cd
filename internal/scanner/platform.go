package scanner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kitstream/pathguard/internal/rules"
)

var componentSplitPattern = regexp.MustCompile(`[/\\]`)

func platformGroup() Group {
	return Group{
		Title: "Windows-style attacks",
		Rules: []Rule{
			{Name: "unc-device-prefix", Kind: Platform, Check: checkUNCDevicePrefix},
			{Name: "ntfs-alternate-data-stream", Kind: Platform, Check: checkNTFSStream},
			{Name: "trailing-dot-or-space", Kind: Platform, Check: checkTrailingDotOrSpace},
			{Name: "reserved-name-with-extension", Kind: Platform, Check: checkReservedNameComponent},
			{Name: "drive-relative", Kind: Platform, Check: checkDriveRelative},
		},
	}
}

func checkUNCDevicePrefix(s string) *Violation {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, `\\?\`), strings.HasPrefix(s, `\\.\`),
		strings.HasPrefix(s, "//?/"), strings.HasPrefix(s, "//./"):
		return &Violation{Kind: Platform, Detail: "Windows extended-length or device path prefix detected"}
	case strings.HasPrefix(s, `\\`), strings.HasPrefix(s, "//"):
		return &Violation{Kind: Platform, Detail: "UNC path prefix detected"}
	case strings.Contains(lower, `\device\`):
		return &Violation{Kind: Platform, Detail: "Windows device path detected"}
	}
	return nil
}

func checkNTFSStream(s string) *Violation {
	for i, comp := range componentSplitPattern.Split(s, -1) {
		if comp == "" {
			continue
		}
		idx := strings.IndexByte(comp, ':')
		if idx < 0 {
			continue
		}
		if i == 0 && idx == 1 && isDriveLetter(comp[0]) && !strings.Contains(comp[2:], ":") {
			continue
		}
		return &Violation{Kind: Platform, Detail: fmt.Sprintf("NTFS alternate data stream syntax detected in %q", comp)}
	}
	return nil
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func checkTrailingDotOrSpace(s string) *Violation {
	for _, comp := range componentSplitPattern.Split(s, -1) {
		if comp == "" || comp == "." || comp == ".." {
			continue
		}
		last := rune(comp[len(comp)-1])
		if last == '.' {
			return &Violation{Kind: Platform, Detail: fmt.Sprintf("component %q ends with a trailing dot", comp)}
		}
		if unicode.IsSpace(last) {
			return &Violation{Kind: Platform, Detail: fmt.Sprintf("component %q ends with trailing whitespace", comp)}
		}
	}
	return nil
}

func checkReservedNameComponent(s string) *Violation {
	for _, comp := range componentSplitPattern.Split(s, -1) {
		if comp == "" {
			continue
		}
		base := comp
		if i := strings.IndexByte(comp, '.'); i >= 0 {
			base = comp[:i]
		}
		if rules.ReservedNames[strings.ToUpper(base)] {
			return &Violation{Kind: Platform, Detail: fmt.Sprintf("component %q uses reserved name %q", comp, strings.ToUpper(base))}
		}
	}
	return nil
}

func checkDriveRelative(s string) *Violation {
	for _, comp := range componentSplitPattern.Split(s, -1) {
		if len(comp) >= 2 && isDriveLetter(comp[0]) && comp[1] == ':' && len(comp) > 2 {
			return &Violation{Kind: Platform, Detail: fmt.Sprintf("drive-relative component %q detected", comp)}
		}
	}
	return nil
}
