// Package review curates SSSOM mapping sets. A Session loads the
// OWL-axiom-style mappings from a Turtle file, records reviewer
// decisions as sssom:reviewer_* annotations on each axiom, and writes
// the augmented graph back out as Turtle.
package review

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/deiu/rdf2go"
	"github.com/google/uuid"

	"github.com/c360studio/sssomtool/vocabulary/sssom"
)

// Decision is a reviewer verdict on one mapping.
type Decision string

const (
	DecisionAccept      Decision = "accept"
	DecisionReject      Decision = "reject"
	DecisionRefine      Decision = "requires_refinement"
	DecisionUnspecified Decision = "unspecified"
)

// ParseDecision accepts both the long decision names and the
// single-letter prompts shown in the review loop.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "y":
		return DecisionAccept, nil
	case "reject", "n":
		return DecisionReject, nil
	case "requires_refinement", "r":
		return DecisionRefine, nil
	case "unspecified", "":
		return DecisionUnspecified, nil
	}
	return "", fmt.Errorf("unknown decision %q (accept, reject, requires_refinement, unspecified)", s)
}

// Reviewer identifies the person reviewing, ideally by ORCID.
type Reviewer struct {
	ID   string
	Name string
}

// Mapping is one reviewable SSSOM mapping materialized from the graph.
type Mapping struct {
	Axiom        string
	SubjectID    string
	ObjectID     string
	PredicateID  string
	CurationRule string
	// Confidence is nil when absent or unparsable.
	Confidence *float64
}

// Session holds the parsed graph and the mappings found in it. Axioms
// that lack sssom:subject_id or sssom:object_id are not SSSOM mappings
// and are left untouched.
type Session struct {
	path     string
	graph    *rdf2go.Graph
	axioms   []rdf2go.Term
	mappings []Mapping
	reviewer Reviewer
	activity string
	logger   *slog.Logger
}

// Load parses a Turtle file and collects its owl:Axiom mappings, sorted
// by axiom IRI. The reviewer is set separately, after identity prompts.
func Load(path string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	g := rdf2go.NewGraph("file://" + abs)
	if err := g.Parse(f, "text/turtle"); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	s := &Session{
		path:     path,
		graph:    g,
		activity: sssom.Namespace + "review/" + uuid.NewString(),
		logger:   logger,
	}
	s.collect()

	logger.Info("loaded SSSOM mappings",
		slog.String("file", filepath.Base(path)),
		slog.Int("mappings", len(s.mappings)))
	return s, nil
}

// collect finds every owl:Axiom subject carrying both subject_id and
// object_id and materializes it as a Mapping.
func (s *Session) collect() {
	typed := s.graph.All(nil,
		rdf2go.NewResource(sssom.RDFType), rdf2go.NewResource(sssom.OWLAxiom))

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

	for _, axiom := range subjects {
		subjectID := s.value(axiom, sssom.SubjectID)
		objectID := s.value(axiom, sssom.ObjectID)
		if subjectID == "" || objectID == "" {
			continue
		}
		m := Mapping{
			Axiom:        axiom.RawValue(),
			SubjectID:    subjectID,
			ObjectID:     objectID,
			PredicateID:  s.value(axiom, sssom.PredicateID),
			CurationRule: s.value(axiom, sssom.CurationRule),
		}
		if raw := s.value(axiom, sssom.Confidence); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				m.Confidence = &v
			}
		}
		s.axioms = append(s.axioms, axiom)
		s.mappings = append(s.mappings, m)
	}
}

// Mappings returns the reviewable mappings in stable order.
func (s *Session) Mappings() []Mapping {
	return s.mappings
}

// Reviewer returns the current reviewer identity.
func (s *Session) Reviewer() Reviewer {
	return s.reviewer
}

// SetReviewer records who is reviewing. Must be called before Annotate.
func (s *Session) SetReviewer(r Reviewer) {
	s.reviewer = r
}

// Annotate appends the reviewer decision triples to the i-th mapping's
// axiom.
func (s *Session) Annotate(i int, decision Decision, comment string) error {
	if i < 0 || i >= len(s.axioms) {
		return fmt.Errorf("mapping index %d out of range", i)
	}
	if s.reviewer.ID == "" && s.reviewer.Name == "" {
		return fmt.Errorf("reviewer not set")
	}

	axiom := s.axioms[i]
	s.graph.AddTriple(axiom,
		rdf2go.NewResource(sssom.ReviewerID), rdf2go.NewLiteral(s.reviewer.ID))
	s.graph.AddTriple(axiom,
		rdf2go.NewResource(sssom.ReviewerLabel), rdf2go.NewLiteral(s.reviewer.Name))
	s.graph.AddTriple(axiom,
		rdf2go.NewResource(sssom.ReviewerDecision), rdf2go.NewLiteral(string(decision)))
	s.graph.AddTriple(axiom,
		rdf2go.NewResource(sssom.ReviewerJustification), rdf2go.NewLiteral(comment))
	return nil
}

// Save stamps the mapping set with this session's review activity and
// serializes the graph to <dir>/<input-stem>_<reviewer-name>.ttl.
// Returns the written path.
func (s *Session) Save(dir string) (string, error) {
	for _, t := range s.graph.All(nil,
		rdf2go.NewResource(sssom.RDFType), rdf2go.NewResource(sssom.ClassMappingSet)) {
		s.graph.AddTriple(t.Subject,
			rdf2go.NewResource(sssom.ReviewActivity), rdf2go.NewResource(s.activity))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	base := filepath.Base(s.path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := strings.ReplaceAll(strings.TrimSpace(s.reviewer.Name), " ", "_")
	if name == "" {
		name = "reviewed"
	}
	out := filepath.Join(dir, fmt.Sprintf("%s_%s.ttl", stem, name))

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := s.graph.Serialize(f, "text/turtle"); err != nil {
		return "", fmt.Errorf("serialize %s: %w", out, err)
	}

	s.logger.Info("wrote reviewed mapping set", slog.String("output", out))
	return out, nil
}

// value returns the raw value of the first object for (subject,
// predicate), smallest first for stability.
func (s *Session) value(subject rdf2go.Term, predicate string) string {
	triples := s.graph.All(subject, rdf2go.NewResource(predicate), nil)
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
