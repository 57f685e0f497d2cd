package pathguard

import (
	"github.com/kitstream/pathguard/internal/canon"
	"github.com/kitstream/pathguard/internal/scanner"
)

// Option configures a Scanner.
type Option func(*scannerConfig)

type scannerConfig struct {
	permissiveTempRoots bool
	hook                Hook
}

// WithPermissiveTempRoots removes /tmp and /var/tmp from the special-roots
// rule group. The default is strict: temp roots are rejected. This is the
// only rule-level customisation point the core exposes; it is a Go
// constructor option, not a configuration file or environment variable.
func WithPermissiveTempRoots() Option {
	return func(c *scannerConfig) { c.permissiveTempRoots = true }
}

// WithHook wires an observability callback invoked once per rejection.
// The hook cannot alter the outcome of a check.
func WithHook(h Hook) Option {
	return func(c *scannerConfig) { c.hook = h }
}

// Scanner is a configured instance of the rule engine. The zero value is
// not usable; construct one with NewScanner. A Scanner is stateless after
// construction and safe for concurrent use.
type Scanner struct {
	fullGroups     []scanner.Group // groups 1-7, for PathCheck
	fileNameGroups []scanner.Group // groups 1-6, for FileNameCheck
	hook           scanner.Hook
}

// NewScanner builds a Scanner from the given options. With no options the
// result is the strict default described by the spec.
func NewScanner(opts ...Option) *Scanner {
	cfg := &scannerConfig{}
	for _, o := range opts {
		o(cfg)
	}

	groups := scanner.Groups(scanner.Config{PermissiveTempRoots: cfg.permissiveTempRoots})

	var hook scanner.Hook
	if cfg.hook != nil {
		userHook := cfg.hook
		hook = func(v scanner.Violation) {
			userHook(Decision{Kind: fromScannerKind(v.Kind), Rule: v.Rule, Detail: v.Detail})
		}
	}

	return &Scanner{
		fullGroups:     groups,
		fileNameGroups: groups[:6], // filenames have no root to check against group 7
		hook:           hook,
	}
}

var defaultScanner = NewScanner()

// PathCheck validates input against base and returns the canonical
// absolute path on success. base must be an absolute, existing directory;
// it is trusted and is not itself subject to the scanner's rules.
func PathCheck(input, base string) (string, error) {
	return defaultScanner.PathCheck(input, base)
}

// PathCheck is the Scanner-bound form of the package-level PathCheck,
// honoring whatever Options the Scanner was constructed with.
func (s *Scanner) PathCheck(input, base string) (string, error) {
	if input == "" {
		return "", &Error{Kind: StructureError, Rule: "empty-input", Detail: "path input must not be empty"}
	}

	if v := scanner.Scan(input, s.fullGroups, s.hook); v != nil {
		return "", &Error{Kind: fromScannerKind(v.Kind), Rule: v.Rule, Detail: v.Detail}
	}

	resolved, err := canon.Resolve(base, input)
	if err != nil {
		switch e := err.(type) {
		case *canon.ResourceError:
			return "", &Error{Kind: ResourceError, Rule: "canonicalisation", Detail: e.Detail, cause: e.Err}
		case *canon.ContainmentError:
			return "", &Error{Kind: ContainmentError, Rule: "containment", Detail: e.Detail}
		default:
			return "", &Error{Kind: ResourceError, Rule: "canonicalisation", Detail: err.Error(), cause: err}
		}
	}

	return resolved, nil
}

func fromScannerKind(k scanner.Kind) ErrorKind {
	switch k {
	case scanner.Whitespace:
		return WhitespaceError
	case scanner.Scheme:
		return SchemeError
	case scanner.Encoding:
		return EncodingError
	case scanner.Unicode:
		return UnicodeError
	case scanner.Structure:
		return StructureError
	case scanner.Platform:
		return PlatformError
	case scanner.SpecialRoot:
		return SpecialRootError
	default:
		return StructureError
	}
}
