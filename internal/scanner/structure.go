package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tripleDotPattern      = regexp.MustCompile(`\.{3,}`)
	dotSpaceDotPattern    = regexp.MustCompile(`\.[ \t]\.`)
	dotPipeDotPattern     = regexp.MustCompile(`\.\|\.`)
	mixedSeparatorPattern = regexp.MustCompile(`/\.{1,2}\\|\\\.{1,2}/`)
	driveLetterPattern    = regexp.MustCompile(`(?i)^[a-z]:`)
)

var nestedTraversalTokens = []string{
	"....//", `....\/`, `....\\`,
}

func structureGroup() Group {
	return Group{
		Title: "structural",
		Rules: []Rule{
			{Name: "absolute-path", Kind: Structure, Check: checkAbsolutePath},
			{Name: "separator-manipulation", Kind: Structure, Check: checkSeparatorManipulation},
			{Name: "semicolon-separator", Kind: Structure, Check: checkSemicolon},
			{Name: "advanced-traversal", Kind: Structure, Check: checkAdvancedTraversal},
		},
	}
}

func checkAbsolutePath(s string) *Violation {
	if strings.HasPrefix(s, "/") {
		return &Violation{Kind: Structure, Detail: "absolute path is not allowed"}
	}
	if driveLetterPattern.MatchString(s) {
		return &Violation{Kind: Structure, Detail: fmt.Sprintf("drive-letter absolute path %q is not allowed", s)}
	}
	// A leading `\\` (UNC or device prefix) is left to the platform group.
	return nil
}

func checkSeparatorManipulation(s string) *Violation {
	// A leading `\\` is a UNC or device prefix, reported by the platform group.
	body := strings.TrimPrefix(s, `\\`)
	if strings.Contains(body, "//") {
		return &Violation{Kind: Structure, Detail: "doubled forward slash detected"}
	}
	if strings.Contains(body, `\\`) {
		return &Violation{Kind: Structure, Detail: "doubled backslash detected"}
	}
	if strings.Contains(body, `\/`) || strings.Contains(body, `/\`) {
		return &Violation{Kind: Structure, Detail: "mixed forward/backward slash detected"}
	}
	if mixedSeparatorPattern.MatchString(body) {
		return &Violation{Kind: Structure, Detail: "separator-dot-separator traversal detected"}
	}
	return nil
}

func checkSemicolon(s string) *Violation {
	if strings.Contains(s, ";") {
		return &Violation{Kind: Structure, Detail: "semicolon used as an alternative separator is not allowed"}
	}
	return nil
}

func checkAdvancedTraversal(s string) *Violation {
	if m := tripleDotPattern.FindString(s); m != "" {
		return &Violation{Kind: Structure, Detail: fmt.Sprintf("traversal pattern %q detected", m)}
	}
	if m := dotSpaceDotPattern.FindString(s); m != "" {
		return &Violation{Kind: Structure, Detail: fmt.Sprintf("traversal pattern %q detected", m)}
	}
	if m := dotPipeDotPattern.FindString(s); m != "" {
		return &Violation{Kind: Structure, Detail: fmt.Sprintf("traversal pattern %q detected", m)}
	}
	for _, tok := range nestedTraversalTokens {
		if strings.Contains(s, tok) {
			return &Violation{Kind: Structure, Detail: fmt.Sprintf("nested traversal pattern %q detected", tok)}
		}
	}
	return nil
}
