package analyzer

import "sort"

// sortStrings sorts in place; a tiny indirection so the rule bodies read
// as "sort these hostnames" rather than importing sort directly in a
// dozen places.
func sortStrings(s []string) {
	sort.Strings(s)
}
