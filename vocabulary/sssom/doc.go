// Package sssom provides vocabulary constants for the SSSOM
// (Simple Standard for Sharing Ontology Mappings) model and the
// standard namespaces it is expressed against.
//
// The package covers three groups of terms:
//   - SSSOM core: MappingSet, Mapping and their properties
//     (subject_id, object_id, predicate_id, confidence, ...)
//   - Reviewer extension: the reviewer_* properties appended by the
//     review tool
//   - Supporting namespaces: RDF, OWL, XSD, SKOS and SEMAPV terms used
//     when emitting mapping sets
//
// Prefixes returns the prefix map declared at the top of every
// serialized mapping set.
package sssom
