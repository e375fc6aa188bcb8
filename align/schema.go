package align

import (
	"sort"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/sssomtool/vocabulary/sssom"
)

// Role identifies a semantic role in the Alignment API vocabulary.
type Role string

// Predicate and class roles. The string value doubles as the local-name
// suffix used to discover the concrete IRI.
const (
	RoleOnto1     Role = "onto1"
	RoleOnto2     Role = "onto2"
	RoleMap       Role = "map"
	RoleEntity1   Role = "entity1"
	RoleEntity2   Role = "entity2"
	RoleMeasure   Role = "measure"
	RoleRelation  Role = "relation"
	RoleCid       Role = "cid"
	RoleAlignment Role = "Alignment"
	RoleCell      Role = "Cell"
)

// predicateRoles is ordered; a predicate is assigned the first suffix
// that matches.
var predicateRoles = []Role{
	RoleOnto1, RoleOnto2, RoleMap, RoleEntity1,
	RoleEntity2, RoleMeasure, RoleRelation, RoleCid,
}

var classRoles = []Role{RoleAlignment, RoleCell}

// requiredRoles are the roles that must resolve before a file can be
// converted. Cid is optional: it may live in a foreign namespace or be
// absent entirely. Cell is recovered but never required, since cells
// are reached through the map predicate.
var requiredRoles = []Role{
	RoleOnto1, RoleOnto2, RoleMap, RoleEntity1,
	RoleEntity2, RoleMeasure, RoleRelation, RoleAlignment,
}

// Schema maps semantic roles to the concrete predicate and class IRIs
// used by one input file. Unresolved roles are empty strings.
type Schema struct {
	Onto1     string
	Onto2     string
	Map       string
	Entity1   string
	Entity2   string
	Measure   string
	Relation  string
	Cid       string
	Alignment string
	Cell      string
}

// Conflict records a role for which two or more distinct IRIs matched
// the suffix. The lexicographically smallest IRI is kept.
type Conflict struct {
	Role Role
	IRIs []string
}

// DiscoverSchema scans every triple once and classifies predicate IRIs
// by local-name suffix, and the objects of rdf:type triples by the
// Alignment/Cell class suffixes. Candidates per role are resolved to the
// lexicographically smallest IRI so the result does not depend on the
// store's iteration order; duplicate matches are reported as conflicts.
// DiscoverSchema never fails: unresolved roles stay empty and the
// caller decides whether to proceed.
func DiscoverSchema(g *rdf2go.Graph) (Schema, []Conflict) {
	candidates := make(map[Role]map[string]struct{})
	add := func(role Role, iri string) {
		if candidates[role] == nil {
			candidates[role] = make(map[string]struct{})
		}
		candidates[role][iri] = struct{}{}
	}

	for t := range g.IterTriples() {
		pred, ok := t.Predicate.(*rdf2go.Resource)
		if !ok {
			continue
		}
		lname := LocalName(pred.URI)
		for _, role := range predicateRoles {
			if strings.HasSuffix(lname, string(role)) {
				add(role, pred.URI)
				break
			}
		}

		if pred.URI != sssom.RDFType {
			continue
		}
		obj, ok := t.Object.(*rdf2go.Resource)
		if !ok {
			continue
		}
		lname = LocalName(obj.URI)
		for _, role := range classRoles {
			if strings.HasSuffix(lname, string(role)) {
				add(role, obj.URI)
				break
			}
		}
	}

	var schema Schema
	var conflicts []Conflict
	for role, set := range candidates {
		iris := make([]string, 0, len(set))
		for iri := range set {
			iris = append(iris, iri)
		}
		sort.Strings(iris)
		if len(iris) > 1 {
			conflicts = append(conflicts, Conflict{Role: role, IRIs: iris})
		}
		schema.set(role, iris[0])
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Role < conflicts[j].Role })
	return schema, conflicts
}

// MissingRequired lists the required roles that did not resolve, in
// discovery order. An empty result means the file is convertible.
func (s Schema) MissingRequired() []Role {
	var missing []Role
	for _, role := range requiredRoles {
		if s.get(role) == "" {
			missing = append(missing, role)
		}
	}
	return missing
}

func (s *Schema) set(role Role, iri string) {
	switch role {
	case RoleOnto1:
		s.Onto1 = iri
	case RoleOnto2:
		s.Onto2 = iri
	case RoleMap:
		s.Map = iri
	case RoleEntity1:
		s.Entity1 = iri
	case RoleEntity2:
		s.Entity2 = iri
	case RoleMeasure:
		s.Measure = iri
	case RoleRelation:
		s.Relation = iri
	case RoleCid:
		s.Cid = iri
	case RoleAlignment:
		s.Alignment = iri
	case RoleCell:
		s.Cell = iri
	}
}

func (s Schema) get(role Role) string {
	switch role {
	case RoleOnto1:
		return s.Onto1
	case RoleOnto2:
		return s.Onto2
	case RoleMap:
		return s.Map
	case RoleEntity1:
		return s.Entity1
	case RoleEntity2:
		return s.Entity2
	case RoleMeasure:
		return s.Measure
	case RoleRelation:
		return s.Relation
	case RoleCid:
		return s.Cid
	case RoleAlignment:
		return s.Alignment
	case RoleCell:
		return s.Cell
	}
	return ""
}
