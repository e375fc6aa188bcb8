// Package matcher invokes an external Java-based ontology matcher
// (LogMap-style) as a subprocess. The matcher is an opaque black box:
// it takes two ontology IRIs and writes Alignment API files into an
// output directory, which the convert package then consumes.
package matcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Options configures the matcher invocation.
type Options struct {
	// Java is the java binary to invoke.
	Java string
	// Jar is the path to the matcher jar. Required.
	Jar string
	// MinHeap and MaxHeap are JVM -Xms/-Xmx values, e.g. "500m", "10g".
	MinHeap string
	MaxHeap string
	// EntityExpansionLimit raises the JAXP entity expansion cap; large
	// ontologies blow through the JVM default.
	EntityExpansionLimit int
	// ExtraArgs are appended to the JVM arguments before -jar.
	ExtraArgs []string
}

// Runner executes matcher runs.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// NewRunner validates the options and creates a Runner. A nil logger
// falls back to slog.Default().
func NewRunner(opts Options, logger *slog.Logger) (*Runner, error) {
	if opts.Jar == "" {
		return nil, fmt.Errorf("matcher jar path is required")
	}
	if opts.Java == "" {
		opts.Java = "java"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, logger: logger}, nil
}

// Match runs the matcher over source and target, writing its output
// into outputDir. Source and target may be local paths (converted to
// file:// IRIs) or IRIs, which pass through untouched. The subprocess
// inherits ctx: cancelling it kills the matcher.
func (r *Runner) Match(ctx context.Context, source, target, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := r.buildArgs(source, target, outputDir)
	r.logger.Info("running matcher",
		slog.String("jar", r.opts.Jar),
		slog.String("source", source),
		slog.String("target", target),
		slog.String("output", outputDir))
	r.logger.Debug("matcher command",
		slog.String("java", r.opts.Java),
		slog.Any("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.opts.Java, args...)
	cmd.Stdout = &logWriter{logger: r.logger, level: slog.LevelInfo}
	cmd.Stderr = &logWriter{logger: r.logger, level: slog.LevelWarn, tail: &stderr}

	if err := cmd.Run(); err != nil {
		tail := strings.TrimSpace(stderr.String())
		if tail != "" {
			return fmt.Errorf("matcher failed: %w: %s", err, lastLines(tail, 5))
		}
		return fmt.Errorf("matcher failed: %w", err)
	}
	return nil
}

// buildArgs assembles the JVM and matcher argument list.
func (r *Runner) buildArgs(source, target, outputDir string) []string {
	args := []string{"--add-opens", "java.base/java.lang=ALL-UNNAMED"}
	if r.opts.MinHeap != "" {
		args = append(args, "-Xms"+r.opts.MinHeap)
	}
	if r.opts.MaxHeap != "" {
		args = append(args, "-Xmx"+r.opts.MaxHeap)
	}
	if r.opts.EntityExpansionLimit > 0 {
		args = append(args, fmt.Sprintf("-DentityExpansionLimit=%d", r.opts.EntityExpansionLimit))
	}
	args = append(args, r.opts.ExtraArgs...)
	args = append(args,
		"-jar", r.opts.Jar,
		"MATCHER",
		FileIRI(source),
		FileIRI(target),
		ensureTrailingSlash(outputDir),
		"true",
	)
	return args
}

// FileIRI converts a local path to a file:// IRI. Values that already
// carry a scheme pass through unchanged.
func FileIRI(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

// ensureTrailingSlash appends a slash; the matcher treats its output
// argument as a directory prefix.
func ensureTrailingSlash(dir string) string {
	if strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "/"
}

// lastLines returns at most n trailing lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// logWriter streams subprocess output to the logger line by line,
// optionally keeping a copy for error reporting.
type logWriter struct {
	logger *slog.Logger
	level  slog.Level
	tail   *bytes.Buffer
	buf    bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	if w.tail != nil {
		w.tail.Write(p)
	}
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			w.buf.WriteString(line)
			break
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			w.logger.Log(context.Background(), w.level, line)
		}
	}
	return len(p), nil
}
