package convert

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a file must stay quiet after a write
// event before it is converted. Serializers often emit several writes
// per file; converting on the first one would read a partial document.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch converts .ttl files created or modified in inDir until ctx is
// cancelled. Files named *_sssom.ttl are ignored so the watcher never
// consumes its own output when outDir equals inDir.
func (c *Converter) Watch(ctx context.Context, inDir, outDir string, debounce time.Duration) error {
	if outDir == "" {
		outDir = inDir
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(inDir); err != nil {
		return err
	}
	c.logger.Info("watching for alignment files",
		slog.String("dir", inDir),
		slog.Duration("debounce", debounce))

	pending := make(map[string]*time.Timer)
	ready := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isInput(event.Name) {
				continue
			}
			if timer, exists := pending[event.Name]; exists {
				timer.Stop()
			}
			path := event.Name
			pending[path] = time.AfterFunc(debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			err := c.ConvertFile(path, OutputPath(outDir, path))
			if err != nil && !errors.Is(err, ErrSkipped) {
				c.logger.Error("conversion failed",
					slog.String("file", filepath.Base(path)),
					slog.String("error", err.Error()))
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", slog.String("error", watchErr.Error()))
		}
	}
}

// isInput reports whether a path looks like an alignment input file.
func isInput(path string) bool {
	name := filepath.Base(path)
	if strings.HasSuffix(name, "_sssom.ttl") {
		return false
	}
	ok, _ := doublestar.Match(inputPattern, name)
	return ok
}
