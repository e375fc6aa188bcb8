package align

import (
	"strings"
	"testing"

	"github.com/deiu/rdf2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want string
	}{
		{"fragment", "http://example.org/voc#entity1", "entity1"},
		{"path", "http://example.org/voc/entity1", "entity1"},
		{"trailing slash", "http://example.org/voc/entity1/", "entity1"},
		{"fragment wins over path", "http://example.org/a/b#c", "c"},
		{"concatenated local name", "http://example.org/alignmentonto1", "alignmentonto1"},
		{"no separators", "entity1", "entity1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.iri))
		})
	}
}

const alignmentTurtle = `@prefix align: <http://knowledgeweb.semanticweb.org/heterogeneity/alignment#> .

<http://example.org/aln> a align:Alignment ;
    align:onto1 <http://a/> ;
    align:onto2 <http://b/> ;
    align:map <http://example.org/cell1> .

<http://example.org/cell1> a align:Cell ;
    align:entity1 <http://a/x> ;
    align:entity2 <http://b/y> ;
    align:relation "=" ;
    align:measure "0.95" ;
    align:cid "1" .
`

func parseGraph(t *testing.T, src string) *rdf2go.Graph {
	t.Helper()
	g := rdf2go.NewGraph("http://example.org/test")
	require.NoError(t, g.Parse(strings.NewReader(src), "text/turtle"))
	return g
}

func TestDiscoverSchema(t *testing.T) {
	g := parseGraph(t, alignmentTurtle)

	schema, conflicts := DiscoverSchema(g)
	assert.Empty(t, conflicts)

	ns := "http://knowledgeweb.semanticweb.org/heterogeneity/alignment#"
	assert.Equal(t, ns+"onto1", schema.Onto1)
	assert.Equal(t, ns+"onto2", schema.Onto2)
	assert.Equal(t, ns+"map", schema.Map)
	assert.Equal(t, ns+"entity1", schema.Entity1)
	assert.Equal(t, ns+"entity2", schema.Entity2)
	assert.Equal(t, ns+"measure", schema.Measure)
	assert.Equal(t, ns+"relation", schema.Relation)
	assert.Equal(t, ns+"cid", schema.Cid)
	assert.Equal(t, ns+"Alignment", schema.Alignment)
	assert.Equal(t, ns+"Cell", schema.Cell)
	assert.Empty(t, schema.MissingRequired())
}

func TestDiscoverSchemaSuffixMatching(t *testing.T) {
	// IRIs like .../alignmentonto1 (no dedicated namespace) must still
	// resolve by suffix.
	src := `
<http://example.org/aln> a <http://example.org/voc/OAEIAlignment> ;
    <http://example.org/voc/alignmentonto1> <http://a/> ;
    <http://example.org/voc/alignmentonto2> <http://b/> ;
    <http://example.org/voc/alignmentmap> <http://example.org/cell1> .

<http://example.org/cell1>
    <http://example.org/voc/cellentity1> <http://a/x> ;
    <http://example.org/voc/cellentity2> <http://b/y> ;
    <http://example.org/voc/cellrelation> "=" ;
    <http://example.org/voc/cellmeasure> "0.8" .
`
	g := parseGraph(t, src)
	schema, _ := DiscoverSchema(g)

	assert.Equal(t, "http://example.org/voc/alignmentonto1", schema.Onto1)
	assert.Equal(t, "http://example.org/voc/OAEIAlignment", schema.Alignment)
	assert.Empty(t, schema.MissingRequired())
	assert.Empty(t, schema.Cid)
}

func TestDiscoverSchemaMissingRoles(t *testing.T) {
	src := `
<http://example.org/aln> a <http://example.org/voc#Alignment> ;
    <http://example.org/voc#onto1> <http://a/> .
`
	g := parseGraph(t, src)
	schema, _ := DiscoverSchema(g)

	missing := schema.MissingRequired()
	assert.Contains(t, missing, RoleOnto2)
	assert.Contains(t, missing, RoleMap)
	assert.Contains(t, missing, RoleEntity1)
	assert.Contains(t, missing, RoleEntity2)
	assert.Contains(t, missing, RoleMeasure)
	assert.Contains(t, missing, RoleRelation)
	assert.NotContains(t, missing, RoleOnto1)
	assert.NotContains(t, missing, RoleAlignment)
}

func TestDiscoverSchemaConflict(t *testing.T) {
	// Two differently prefixed predicates both end in "relation"; the
	// smallest IRI must win deterministically and the conflict must be
	// reported.
	src := `
<http://example.org/cell1>
    <http://example.org/b#relation> "=" ;
    <http://example.org/a#relation> "=" .
`
	g := parseGraph(t, src)
	schema, conflicts := DiscoverSchema(g)

	assert.Equal(t, "http://example.org/a#relation", schema.Relation)
	require.Len(t, conflicts, 1)
	assert.Equal(t, RoleRelation, conflicts[0].Role)
	assert.Equal(t, []string{"http://example.org/a#relation", "http://example.org/b#relation"}, conflicts[0].IRIs)
}

func TestExtract(t *testing.T) {
	g := parseGraph(t, alignmentTurtle)
	schema, _ := DiscoverSchema(g)

	alignments := Extract(g, schema)
	require.Len(t, alignments, 1)

	a := alignments[0]
	assert.Equal(t, "http://a/", a.Onto1)
	assert.Equal(t, "http://b/", a.Onto2)
	require.Len(t, a.Cells, 1)

	cell := a.Cells[0]
	assert.Equal(t, "http://a/x", cell.Entity1)
	assert.Equal(t, "http://b/y", cell.Entity2)
	assert.Equal(t, "=", cell.Relation)
	assert.Equal(t, "0.95", cell.Measure)
	assert.Equal(t, "1", cell.Cid)
	assert.True(t, cell.Complete())
}

func TestExtractIncompleteCell(t *testing.T) {
	src := `@prefix align: <http://knowledgeweb.semanticweb.org/heterogeneity/alignment#> .

<http://example.org/aln> a align:Alignment ;
    align:onto1 <http://a/> ;
    align:onto2 <http://b/> ;
    align:map <http://example.org/cell1> .

<http://example.org/cell1>
    align:entity1 <http://a/x> ;
    align:relation "=" ;
    align:measure "0.5" .
`
	g := parseGraph(t, src)
	schema, _ := DiscoverSchema(g)

	alignments := Extract(g, schema)
	require.Len(t, alignments, 1)
	require.Len(t, alignments[0].Cells, 1)
	assert.False(t, alignments[0].Cells[0].Complete())
}
