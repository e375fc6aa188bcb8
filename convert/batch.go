package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// inputPattern matches the alignment files a directory pass consumes.
const inputPattern = "*.ttl"

// BatchResult summarizes one directory pass.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// ConvertDir converts every .ttl file in inDir, sorted by name, writing
// <stem>_sssom.ttl files into outDir (inDir when outDir is empty).
// Files named *_sssom.ttl are treated as prior output and skipped. A
// parse failure or skip in one file never halts the remaining files.
// The only fatal condition is inDir not being a directory.
func (c *Converter) ConvertDir(inDir, outDir string) (BatchResult, error) {
	var result BatchResult

	info, err := os.Stat(inDir)
	if err != nil {
		return result, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("input path is not a directory: %s", inDir)
	}
	if outDir == "" {
		outDir = inDir
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return result, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isInput(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		inPath := filepath.Join(inDir, name)
		err := c.ConvertFile(inPath, OutputPath(outDir, inPath))
		switch {
		case err == nil:
			result.Converted++
		case errors.Is(err, ErrSkipped):
			result.Skipped++
		default:
			result.Failed++
			c.logger.Error("conversion failed",
				slog.String("file", name),
				slog.String("error", err.Error()))
		}
	}

	return result, nil
}

// OutputPath computes the output location for an input file:
// <outDir>/<input-stem>_sssom.ttl.
func OutputPath(outDir, inPath string) string {
	return filepath.Join(outDir, stem(inPath)+"_sssom.ttl")
}
