package sssom

// Base namespaces for mapping set output.
const (
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	OWLNamespace    = "http://www.w3.org/2002/07/owl#"
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema#"
	SKOSNamespace   = "http://www.w3.org/2004/02/skos/core#"
	Namespace       = "https://w3id.org/sssom/"
	SEMAPVNamespace = "https://w3id.org/semapv/vocab/"
)

// RDF, OWL and XSD terms.
const (
	RDFType     = RDFNamespace + "type"
	OWLOntology = OWLNamespace + "Ontology"
	OWLAxiom    = OWLNamespace + "Axiom"
	XSDDouble   = XSDNamespace + "double"
)

// SKOS mapping relations. Alignment-API relation "=" maps to ExactMatch,
// every other relation value maps to RelatedMatch.
const (
	SKOSExactMatch   = SKOSNamespace + "exactMatch"
	SKOSRelatedMatch = SKOSNamespace + "relatedMatch"
)

// SSSOM classes.
const (
	ClassMappingSet = Namespace + "MappingSet"
	ClassMapping    = Namespace + "Mapping"
)

// SSSOM mapping set and mapping properties.
const (
	SubjectID            = Namespace + "subject_id"
	ObjectID             = Namespace + "object_id"
	PredicateID          = Namespace + "predicate_id"
	Confidence           = Namespace + "confidence"
	MappingJustification = Namespace + "mapping_justification"
	RecordID             = Namespace + "record_id"
	SubjectSource        = Namespace + "subject_source"
	ObjectSource         = Namespace + "object_source"
	Mappings             = Namespace + "mappings"
	CurationRule         = Namespace + "curation_rule"
)

// Reviewer extension properties. These are not part of the published
// SSSOM model; the review tool extends the namespace to record
// curation decisions alongside the mappings they apply to.
const (
	ReviewerID            = Namespace + "reviewer_id"
	ReviewerLabel         = Namespace + "reviewer_label"
	ReviewerDecision      = Namespace + "reviewer_decision"
	ReviewerJustification = Namespace + "reviewer_justification"
	ReviewActivity        = Namespace + "review_activity"
)

// SEMAPV matching process terms.
const (
	SemapvUnspecifiedMatching = SEMAPVNamespace + "UnspecifiedMatching"
)

// MappingSetBase is the base IRI under which mapping set IRIs are
// minted, one per converted input file.
const MappingSetBase = "http://example.org/mappings/"

// Prefixes returns the standard namespace prefixes declared in
// serialized mapping sets.
func Prefixes() map[string]string {
	return map[string]string{
		"rdf":    RDFNamespace,
		"owl":    OWLNamespace,
		"xsd":    XSDNamespace,
		"skos":   SKOSNamespace,
		"sssom":  Namespace,
		"semapv": SEMAPVNamespace,
	}
}
