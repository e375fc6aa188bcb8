// Package rdfxml batch-converts RDF/XML files to Turtle.
package rdfxml

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deiu/rdf2go"
	"github.com/knakk/rdf"
)

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// Converter converts RDF/XML documents to Turtle.
type Converter struct {
	logger *slog.Logger
}

// New creates a Converter. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// ConvertDir converts every .rdf file in dir, writing <stem>.ttl next
// to each input. Per-file failures are logged and skipped. Returns the
// number of files converted.
func (c *Converter) ConvertDir(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("input path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match("*.rdf", entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		c.logger.Info("no .rdf files found", slog.String("dir", dir))
		return 0, nil
	}

	converted := 0
	for _, name := range names {
		inPath := filepath.Join(dir, name)
		outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".ttl"
		if err := c.ConvertFile(inPath, outPath); err != nil {
			c.logger.Error("conversion failed",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}
		c.logger.Info("converted",
			slog.String("input", name),
			slog.String("output", filepath.Base(outPath)))
		converted++
	}
	return converted, nil
}

// ConvertFile decodes one RDF/XML file and serializes it as Turtle.
func (c *Converter) ConvertFile(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	dec := rdf.NewTripleDecoder(f, rdf.RDFXML)
	triples, err := dec.DecodeAll()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	// The decoder yields zero triples and no error for non-XML input;
	// a non-empty file that decodes to nothing is treated as malformed
	// rather than written out as an empty document.
	if len(triples) == 0 {
		if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
			return fmt.Errorf("decode %s: no RDF/XML content found", inPath)
		}
	}

	abs, err := filepath.Abs(inPath)
	if err != nil {
		abs = inPath
	}
	g := rdf2go.NewGraph("file://" + abs)
	for _, t := range triples {
		g.AddTriple(toTerm(t.Subj), toTerm(t.Pred), toTerm(t.Obj))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()
	if err := g.Serialize(out, "text/turtle"); err != nil {
		return fmt.Errorf("serialize %s: %w", outPath, err)
	}
	return nil
}

// toTerm converts a decoded term to its graph-library counterpart.
func toTerm(t rdf.Term) rdf2go.Term {
	switch v := t.(type) {
	case rdf.IRI:
		return rdf2go.NewResource(v.String())
	case rdf.Literal:
		if lang := v.Lang(); lang != "" {
			return rdf2go.NewLiteralWithLanguage(v.String(), lang)
		}
		if dt := v.DataType.String(); dt != "" && dt != xsdString {
			return rdf2go.NewLiteralWithDatatype(v.String(), rdf2go.NewResource(dt))
		}
		return rdf2go.NewLiteral(v.String())
	case rdf.Blank:
		return rdf2go.NewBlankNode(strings.TrimPrefix(v.String(), "_:"))
	default:
		return rdf2go.NewLiteral(t.String())
	}
}
