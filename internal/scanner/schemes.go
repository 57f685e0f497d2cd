package scanner

import (
	"fmt"
	"strings"

	"github.com/kitstream/pathguard/internal/rules"
)

func schemeGroup() Group {
	return Group{
		Title: "protocol schemes",
		Rules: []Rule{
			{Name: "protocol-scheme", Kind: Scheme, Check: checkProtocolScheme},
		},
	}
}

func checkProtocolScheme(s string) *Violation {
	lower := strings.ToLower(s)
	for _, scheme := range rules.ProtocolSchemes {
		if strings.HasPrefix(lower, scheme) {
			return &Violation{Kind: Scheme, Detail: fmt.Sprintf("protocol scheme %q is not allowed in a path", scheme)}
		}
	}
	return nil
}
