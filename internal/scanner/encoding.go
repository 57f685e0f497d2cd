package scanner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kitstream/pathguard/internal/rules"
)

var (
	doubleURLEncodingPattern = regexp.MustCompile(`(?i)%25[0-9a-f]{2}`)
	percentUPattern          = regexp.MustCompile(`(?i)%u[0-9a-f]{4}`)
	htmlEntityPattern        = regexp.MustCompile(`(?i)&#(x[0-9a-f]+|[0-9]+);`)
)

func encodingGroup() Group {
	return Group{
		Title: "encoding attacks",
		Rules: []Rule{
			{Name: "url-percent-encoding", Kind: Encoding, Check: checkURLPercentEncoding},
			{Name: "double-url-encoding", Kind: Encoding, Check: checkDoubleURLEncoding},
			{Name: "overlong-utf8", Kind: Encoding, Check: checkOverlongUTF8},
			{Name: "percent-u-encoding", Kind: Encoding, Check: checkPercentU},
			{Name: "html-entity-encoding", Kind: Encoding, Check: checkHTMLEntity},
			{Name: "hex-escape-literal", Kind: Encoding, Check: checkHexEscape},
		},
	}
}

func checkURLPercentEncoding(s string) *Violation {
	lower := strings.ToLower(s)
	for _, tok := range rules.URLEncodedTokens {
		if strings.Contains(lower, tok) {
			return &Violation{Kind: Encoding, Detail: fmt.Sprintf("URL-encoded token %q detected", tok)}
		}
	}
	return nil
}

func checkDoubleURLEncoding(s string) *Violation {
	if m := doubleURLEncodingPattern.FindString(s); m != "" {
		return &Violation{Kind: Encoding, Detail: fmt.Sprintf("double URL-encoded token %q detected", m)}
	}
	return nil
}

func checkOverlongUTF8(s string) *Violation {
	lower := strings.ToLower(s)
	for _, tok := range rules.OverlongUTF8Tokens {
		if strings.Contains(lower, tok) {
			return &Violation{Kind: Encoding, Detail: fmt.Sprintf("overlong UTF-8 encoding %q detected", tok)}
		}
	}
	return nil
}

func checkPercentU(s string) *Violation {
	if m := percentUPattern.FindString(s); m != "" {
		return &Violation{Kind: Encoding, Detail: fmt.Sprintf("Unicode percent-u encoding %q detected", m)}
	}
	return nil
}

func checkHTMLEntity(s string) *Violation {
	for _, m := range htmlEntityPattern.FindAllStringSubmatch(s, -1) {
		body := m[1]
		var (
			cp  int64
			err error
		)
		if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
			cp, err = strconv.ParseInt(body[1:], 16, 32)
		} else {
			cp, err = strconv.ParseInt(body, 10, 32)
		}
		if err != nil {
			continue
		}
		switch rune(cp) {
		case '.', '/', '\\':
			return &Violation{Kind: Encoding, Detail: fmt.Sprintf("HTML entity encoding of %q detected", string(rune(cp)))}
		}
	}
	return nil
}

func checkHexEscape(s string) *Violation {
	lower := strings.ToLower(s)
	for _, tok := range rules.HexEscapeTokens {
		if strings.Contains(lower, tok) {
			return &Violation{Kind: Encoding, Detail: fmt.Sprintf("hex escape literal %q detected", tok)}
		}
	}
	return nil
}
