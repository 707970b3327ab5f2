package store

import "strings"

// nonWildcardPrefix returns the leading path segments of pattern that
// contain no '*', joined back with '/' — the literal prefix each remote
// store's own listing call can filter on before the remaining glob
// segments are matched client-side via path.Match semantics.
func nonWildcardPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var lit []string
	for _, seg := range segments {
		if strings.ContainsRune(seg, '*') {
			break
		}
		lit = append(lit, seg)
	}
	return strings.Join(lit, "/")
}
