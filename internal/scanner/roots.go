package scanner

import (
	"fmt"
	"strings"

	"github.com/kitstream/pathguard/internal/rules"
)

func specialRootGroup(cfg Config) Group {
	roots := make([]string, len(rules.SpecialRoots))
	copy(roots, rules.SpecialRoots)
	if !cfg.PermissiveTempRoots {
		roots = append(roots, rules.TempRoots...)
	}

	return Group{
		Title: "special system roots",
		Rules: []Rule{
			{
				Name: "special-system-root",
				Kind: SpecialRoot,
				Check: func(s string) *Violation {
					lower := strings.ToLower(s)
					for _, root := range roots {
						if strings.HasPrefix(lower, strings.ToLower(root)) {
							return &Violation{Kind: SpecialRoot, Detail: fmt.Sprintf("access to special system root %q is not allowed", root)}
						}
					}
					return nil
				},
			},
		},
	}
}
