// Package export writes SSSOM mapping sets as Turtle.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/sssomtool/vocabulary/sssom"
)

// TurtleWriter accumulates Turtle output with a fixed prefix block.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer declaring the standard SSSOM
// output prefixes (rdf, owl, xsd, skos, sssom, semapv).
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: sssom.Prefixes(),
	}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes the prefix declarations. Prefixes are sorted for
// consistent output.
func (w *TurtleWriter) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	fmt.Fprintf(&w.sb, "<%s>\n", iri)
}

// WriteType writes a type assertion.
func (w *TurtleWriter) WriteType(typeIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    a <%s>%s\n", typeIRI, terminator(last))
}

// WriteResource writes a predicate with an IRI object.
func (w *TurtleWriter) WriteResource(predicateIRI, objectIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    <%s> <%s>%s\n", predicateIRI, objectIRI, terminator(last))
}

// WriteLiteral writes a predicate with a plain string literal object.
func (w *TurtleWriter) WriteLiteral(predicateIRI, value string, last bool) {
	fmt.Fprintf(&w.sb, "    <%s> \"%s\"%s\n", predicateIRI, escapeString(value), terminator(last))
}

// WriteTypedLiteral writes a predicate with a datatyped literal object.
func (w *TurtleWriter) WriteTypedLiteral(predicateIRI, value, datatypeIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    <%s> \"%s\"^^<%s>%s\n", predicateIRI, escapeString(value), datatypeIRI, terminator(last))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func terminator(last bool) string {
	if last {
		return " ."
	}
	return " ;"
}

// escapeString escapes special characters in strings for Turtle output.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
