// Package align reads Alignment API graphs. The Alignment API (as used
// by OAEI tooling) represents pairwise ontology correspondences as Cell
// resources grouped under an Alignment resource, but the concrete
// namespace varies between producers. This package recovers the schema
// per file by suffix-matching local names, then extracts alignments and
// their cells from the graph.
package align

import "strings"

// LocalName returns the local name of an IRI: the substring after the
// last "#", or after the last "/" (with trailing slashes stripped) when
// no fragment is present.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	s := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
