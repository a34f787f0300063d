package sqlexpr

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes the canonical form of expr. Expressions that differ only in
// whitespace have the same fingerprint, which makes it a suitable key for caches of
// translated statements.
func Fingerprint(expr *Expression) uint64 {
	if expr == nil {
		return 0
	}
	return xxhash.Sum64String(expr.String())
}

// Canonical returns the canonical text of expr: single spaces around binary
// operators, no space after a sign, doubled quotes in string literals.
func Canonical(expr *Expression) string {
	if expr == nil {
		return ""
	}
	return expr.String()
}
