package align

import (
	"sort"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/sssomtool/vocabulary/sssom"
)

// Cell is one candidate correspondence extracted from an alignment.
// String fields are empty when the underlying triple is absent.
type Cell struct {
	// Entity1 and Entity2 are the aligned entity IRIs.
	Entity1 string
	Entity2 string
	// Relation is the relation literal, typically "=".
	Relation string
	// Measure is the raw confidence value; callers parse it.
	Measure string
	// Cid is the optional correspondence identifier, coerced to a
	// string whether it was a literal or an IRI.
	Cid string
}

// Complete reports whether the cell carries both entities. Incomplete
// cells are dropped by the converter.
func (c Cell) Complete() bool {
	return c.Entity1 != "" && c.Entity2 != ""
}

// Alignment is one Alignment resource with its sources and cells.
type Alignment struct {
	Node  string
	Onto1 string
	Onto2 string
	Cells []Cell
}

// Extract returns all resources typed as the schema's Alignment class,
// with their source ontologies and cells resolved. Alignments are
// sorted by node IRI and cells by entity pair so the result is stable
// regardless of the graph's iteration order.
func Extract(g *rdf2go.Graph, s Schema) []Alignment {
	typed := g.All(nil, rdf2go.NewResource(sssom.RDFType), rdf2go.NewResource(s.Alignment))

	subjects := make([]rdf2go.Term, 0, len(typed))
	seen := make(map[string]struct{})
	for _, t := range typed {
		key := t.Subject.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		subjects = append(subjects, t.Subject)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].String() < subjects[j].String()
	})

	alignments := make([]Alignment, 0, len(subjects))
	for _, subj := range subjects {
		a := Alignment{
			Node:  subj.RawValue(),
			Onto1: value(g, subj, s.Onto1),
			Onto2: value(g, subj, s.Onto2),
		}
		for _, t := range g.All(subj, rdf2go.NewResource(s.Map), nil) {
			cell := t.Object
			c := Cell{
				Entity1:  value(g, cell, s.Entity1),
				Entity2:  value(g, cell, s.Entity2),
				Relation: value(g, cell, s.Relation),
				Measure:  value(g, cell, s.Measure),
			}
			if s.Cid != "" {
				c.Cid = value(g, cell, s.Cid)
			}
			a.Cells = append(a.Cells, c)
		}
		sort.Slice(a.Cells, func(i, j int) bool {
			if a.Cells[i].Entity1 != a.Cells[j].Entity1 {
				return a.Cells[i].Entity1 < a.Cells[j].Entity1
			}
			return a.Cells[i].Entity2 < a.Cells[j].Entity2
		})
		alignments = append(alignments, a)
	}
	return alignments
}

// value returns the raw value of the first object for (subject,
// predicate), choosing the lexicographically smallest when several
// exist. Empty when the predicate is unset or absent.
func value(g *rdf2go.Graph, subject rdf2go.Term, predicate string) string {
	if predicate == "" {
		return ""
	}
	triples := g.All(subject, rdf2go.NewResource(predicate), nil)
	if len(triples) == 0 {
		return ""
	}
	best := triples[0].Object.RawValue()
	for _, t := range triples[1:] {
		if v := t.Object.RawValue(); v < best {
			best = v
		}
	}
	return best
}
