// Package convert turns Alignment API Turtle files into SSSOM mapping
// sets serialized as RDF/Turtle.
package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/sssomtool/align"
	"github.com/c360studio/sssomtool/export"
	"github.com/c360studio/sssomtool/vocabulary/sssom"
)

// ErrSkipped marks a file that was intentionally not converted: it is
// missing required schema roles or contains no Alignment instances.
// The batch driver counts skips separately from failures.
var ErrSkipped = errors.New("file skipped")

// Converter converts one Alignment API file at a time. It holds no
// state between files; the discovered schema is recomputed per file.
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

// mapping is one SSSOM mapping ready for serialization.
type mapping struct {
	IRI         string
	RecordID    string
	SubjectID   string
	ObjectID    string
	PredicateID string
	Confidence  *float64
}

// ConvertFile parses inPath as Turtle, discovers the Alignment API
// schema, extracts cells and writes the SSSOM mapping set to outPath.
// Parse errors propagate; missing roles and empty files return an error
// wrapping ErrSkipped. The output file is written atomically: a partial
// mapping set is never left behind.
func (c *Converter) ConvertFile(inPath, outPath string) error {
	c.logger.Info("processing alignment file",
		slog.String("input", inPath),
		slog.String("output", outPath))

	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(inPath)
	if err != nil {
		abs = inPath
	}
	g := rdf2go.NewGraph("file://" + abs)
	if err := g.Parse(f, "text/turtle"); err != nil {
		return fmt.Errorf("parse %s: %w", inPath, err)
	}

	schema, conflicts := align.DiscoverSchema(g)
	for _, conflict := range conflicts {
		c.logger.Warn("ambiguous suffix match, keeping smallest IRI",
			slog.String("file", filepath.Base(inPath)),
			slog.String("role", string(conflict.Role)),
			slog.Any("candidates", conflict.IRIs))
	}
	if missing := schema.MissingRequired(); len(missing) > 0 {
		c.logger.Warn("missing expected schema elements, skipping",
			slog.String("file", filepath.Base(inPath)),
			slog.Any("missing", missing))
		return fmt.Errorf("missing required roles %v: %w", missing, ErrSkipped)
	}

	alignments := align.Extract(g, schema)
	if len(alignments) == 0 {
		c.logger.Warn("no Alignment instances found, skipping",
			slog.String("file", filepath.Base(inPath)))
		return fmt.Errorf("no alignment instances: %w", ErrSkipped)
	}

	setIRI := sssom.MappingSetBase + stem(inPath)

	var subjectSource, objectSource string
	var mappings []mapping
	for _, a := range alignments {
		if subjectSource == "" {
			subjectSource = a.Onto1
		}
		if objectSource == "" {
			objectSource = a.Onto2
		}
		for _, cell := range a.Cells {
			if !cell.Complete() {
				continue
			}
			mappings = append(mappings, buildMapping(setIRI, cell))
		}
	}

	out := serialize(setIRI, subjectSource, objectSource, mappings)
	if err := writeAtomic(outPath, []byte(out)); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	c.logger.Info("wrote mapping set",
		slog.String("output", outPath),
		slog.Int("mappings", len(mappings)))
	return nil
}

// buildMapping derives the mapping IRI and SSSOM fields for one cell.
func buildMapping(setIRI string, cell align.Cell) mapping {
	m := mapping{
		SubjectID: cell.Entity1,
		ObjectID:  cell.Entity2,
	}

	if cell.Cid != "" {
		m.RecordID = cell.Cid
		m.IRI = fmt.Sprintf("%s#m%s", setIRI, cell.Cid)
	} else {
		m.IRI = fmt.Sprintf("%s#m%s", setIRI, pairHash(cell.Entity1, cell.Entity2))
	}

	// Alignment API "=" is the only relation that maps to an exact
	// match; everything else, including an absent relation, becomes a
	// related match.
	if cell.Relation == "=" {
		m.PredicateID = sssom.SKOSExactMatch
	} else {
		m.PredicateID = sssom.SKOSRelatedMatch
	}

	if cell.Measure != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(cell.Measure), 64); err == nil {
			m.Confidence = &v
		}
		// Non-numeric measures drop the confidence triple only.
	}
	return m
}

// serialize renders the mapping set and its mappings as Turtle.
func serialize(setIRI, subjectSource, objectSource string, mappings []mapping) string {
	links := make([]string, 0, len(mappings))
	seen := make(map[string]struct{})
	for _, m := range mappings {
		if _, ok := seen[m.IRI]; ok {
			continue
		}
		seen[m.IRI] = struct{}{}
		links = append(links, m.IRI)
	}

	w := export.NewTurtleWriter()
	w.WritePrefixes()

	rest := len(links)
	if subjectSource != "" {
		rest++
	}
	if objectSource != "" {
		rest++
	}

	w.WriteSubject(setIRI)
	w.WriteType(sssom.OWLOntology, false)
	w.WriteType(sssom.ClassMappingSet, rest == 0)
	i := 0
	next := func() bool {
		i++
		return i == rest
	}
	if subjectSource != "" {
		w.WriteResource(sssom.SubjectSource, subjectSource, next())
	}
	if objectSource != "" {
		w.WriteResource(sssom.ObjectSource, objectSource, next())
	}
	for _, link := range links {
		w.WriteResource(sssom.Mappings, link, next())
	}
	w.WriteBlank()

	for _, m := range mappings {
		w.WriteSubject(m.IRI)
		w.WriteType(sssom.ClassMapping, false)
		if m.RecordID != "" {
			w.WriteLiteral(sssom.RecordID, m.RecordID, false)
		}
		w.WriteResource(sssom.SubjectID, m.SubjectID, false)
		w.WriteResource(sssom.PredicateID, m.PredicateID, false)
		w.WriteResource(sssom.ObjectID, m.ObjectID, false)
		if m.Confidence != nil {
			w.WriteTypedLiteral(sssom.Confidence,
				strconv.FormatFloat(*m.Confidence, 'g', -1, 64), sssom.XSDDouble, false)
		}
		w.WriteResource(sssom.MappingJustification, sssom.SemapvUnspecifiedMatching, true)
		w.WriteBlank()
	}

	return w.String()
}

// pairHash derives a stable identifier for a cell without a cid: the
// first 8 bytes of SHA-256 over the entity pair in a fixed byte
// encoding. Best-effort unique; collisions are possible but the value
// is reproducible across runs and implementations.
func pairHash(entity1, entity2 string) string {
	h := sha256.New()
	h.Write([]byte(entity1))
	h.Write([]byte{0})
	h.Write([]byte(entity2))
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// writeAtomic writes data via a temp file and rename so readers never
// observe a partial mapping set.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".sssom-*.ttl")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// stem returns the file name without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
