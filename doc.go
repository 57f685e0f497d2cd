// Package pathguard decides whether a caller-supplied path, project name,
// or bare filename is safe to use against a trusted base directory on the
// host filesystem.
//
// Three entry points cover the surface: PathCheck resolves a relative path
// against a base directory and returns its canonical absolute form only if
// it stays contained within that base and is free of known evasion
// encodings; NameCheck validates a project/identifier name intended to
// become a filesystem component; FileNameCheck validates a single
// filename with no separators.
//
// All three are pure functions of their input (PathCheck aside, which
// performs one bounded filesystem-canonicalisation syscall sequence).
// None retain state, and all are safe to call concurrently from any
// number of goroutines.
//
// pathguard is a pre-filter, not a full defense: it does not address
// time-of-check/time-of-use races, does not impose a no-follow-symlink
// policy, and does not inspect file content. Callers that need those
// guarantees must add them at open time.
package pathguard
