package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewFixture = `@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
@prefix sssom: <https://w3id.org/sssom/> .

<http://example.org/mappings/anatomy> a owl:Ontology, sssom:MappingSet .

<http://example.org/ax1> a owl:Axiom ;
    sssom:subject_id <http://a/x> ;
    sssom:object_id <http://b/y> ;
    sssom:predicate_id skos:exactMatch ;
    sssom:confidence "0.9" .

<http://example.org/ax2> a owl:Axiom ;
    sssom:subject_id <http://a/z> ;
    sssom:object_id <http://b/w> ;
    sssom:predicate_id skos:relatedMatch .

<http://example.org/ax3> a owl:Axiom .
`

func loadFixture(t *testing.T) *Session {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "anatomy_sssom.ttl")
	require.NoError(t, os.WriteFile(path, []byte(reviewFixture), 0o644))

	session, err := Load(path, nil)
	require.NoError(t, err)
	return session
}

func TestLoadCollectsMappings(t *testing.T) {
	session := loadFixture(t)

	// ax3 has no subject/object ids and is not a reviewable mapping.
	mappings := session.Mappings()
	require.Len(t, mappings, 2)

	first := mappings[0]
	assert.Equal(t, "http://example.org/ax1", first.Axiom)
	assert.Equal(t, "http://a/x", first.SubjectID)
	assert.Equal(t, "http://b/y", first.ObjectID)
	assert.Equal(t, "http://www.w3.org/2004/02/skos/core#exactMatch", first.PredicateID)
	require.NotNil(t, first.Confidence)
	assert.InDelta(t, 0.9, *first.Confidence, 1e-9)

	second := mappings[1]
	assert.Equal(t, "http://example.org/ax2", second.Axiom)
	assert.Nil(t, second.Confidence)
}

func TestAnnotateAndSave(t *testing.T) {
	session := loadFixture(t)
	session.SetReviewer(Reviewer{ID: "orcid:0000-0001-2345-6789", Name: "Ada Example"})

	require.NoError(t, session.Annotate(0, DecisionAccept, "clear lexical match"))
	require.NoError(t, session.Annotate(1, DecisionRefine, "needs a narrower predicate"))

	outDir := t.TempDir()
	path, err := session.Save(outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "anatomy_sssom_Ada_Example.ttl"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ttl := string(data)
	assert.Contains(t, ttl, "reviewer_id")
	assert.Contains(t, ttl, "orcid:0000-0001-2345-6789")
	assert.Contains(t, ttl, "accept")
	assert.Contains(t, ttl, "requires_refinement")
	assert.Contains(t, ttl, "clear lexical match")
	// The mapping set node is stamped with this session's activity.
	assert.Contains(t, ttl, "review_activity")
}

func TestAnnotateRequiresReviewer(t *testing.T) {
	session := loadFixture(t)
	assert.Error(t, session.Annotate(0, DecisionAccept, "x"))
}

func TestAnnotateOutOfRange(t *testing.T) {
	session := loadFixture(t)
	session.SetReviewer(Reviewer{ID: "orcid:1", Name: "A"})
	assert.Error(t, session.Annotate(5, DecisionAccept, "x"))
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want Decision
	}{
		{"accept", DecisionAccept},
		{"y", DecisionAccept},
		{"reject", DecisionReject},
		{"n", DecisionReject},
		{"requires_refinement", DecisionRefine},
		{"r", DecisionRefine},
		{"", DecisionUnspecified},
		{"unspecified", DecisionUnspecified},
	}
	for _, tt := range tests {
		got, err := ParseDecision(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDecision("maybe")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "maybe"))
}
