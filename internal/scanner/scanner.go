// Package scanner implements the ordered rule-group engine described by
// the path-safety core: a fixed table of predicates, grouped and run in a
// declared order, with the first match winning.
package scanner

// Kind classifies which rule group raised a Violation. It is deliberately
// small and closed — the rule set is fixed at build time, not extensible
// at runtime.
type Kind uint8

const (
	Whitespace Kind = iota
	Scheme
	Encoding
	Unicode
	Structure
	Platform
	SpecialRoot
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Scheme:
		return "scheme"
	case Encoding:
		return "encoding"
	case Unicode:
		return "unicode"
	case Structure:
		return "structure"
	case Platform:
		return "platform"
	case SpecialRoot:
		return "special-root"
	default:
		return "unknown"
	}
}

// Violation is what a Rule reports when it rejects an input.
type Violation struct {
	Kind   Kind
	Rule   string
	Detail string
}

// Rule is a pure predicate over an input string. It returns a non-nil
// Violation on rejection, or nil on pass.
type Rule struct {
	Name  string
	Kind  Kind
	Check func(s string) *Violation
}

// Group is a named, ordered set of Rules belonging to one rule-group of
// the spec (whitespace, schemes, encoding, ...).
type Group struct {
	Title string
	Rules []Rule
}

// Config selects which optional behaviors the scanner's rule tables honor.
// The zero value is the strict default.
type Config struct {
	// PermissiveTempRoots, when true, removes /tmp and /var/tmp from the
	// special-roots group. Off by default per the spec's strict mode.
	PermissiveTempRoots bool
}

// Hook, if set, is invoked once for every rejection with the rule that
// fired. It is a monitoring/tracing seam, not part of the validation
// contract, and must not alter the outcome.
type Hook func(v Violation)

// Groups builds the seven content-check rule groups (groups 1-7 of the
// spec) in declared order. Callers that need to skip group 7 (filenames
// have no root) slice the result themselves.
func Groups(cfg Config) []Group {
	return []Group{
		whitespaceGroup(),
		schemeGroup(),
		encodingGroup(),
		unicodeGroup(),
		structureGroup(),
		platformGroup(),
		specialRootGroup(cfg),
	}
}

// Scan runs groups over s in order, returning the first Violation raised.
// Within a group, rules run in declaration order; the scanner never
// modifies s.
func Scan(s string, groups []Group, hook Hook) *Violation {
	for _, g := range groups {
		for _, r := range g.Rules {
			if v := r.Check(s); v != nil {
				v.Rule = r.Name
				if hook != nil {
					hook(*v)
				}
				return v
			}
		}
	}
	return nil
}
