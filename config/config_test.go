package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "java", cfg.Matcher.Java)
	assert.Equal(t, "500m", cfg.Matcher.MinHeap)
	assert.Equal(t, "10g", cfg.Matcher.MaxHeap)
	assert.Equal(t, "output", cfg.Review.OutDir)
	assert.Equal(t, 500*time.Millisecond, cfg.Convert.WatchDebounce)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty java", func(c *Config) { c.Matcher.Java = "" }},
		{"empty heap", func(c *Config) { c.Matcher.MaxHeap = "" }},
		{"zero expansion limit", func(c *Config) { c.Matcher.EntityExpansionLimit = 0 }},
		{"negative debounce", func(c *Config) { c.Convert.WatchDebounce = -time.Second }},
		{"empty review dir", func(c *Config) { c.Review.OutDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergePrecedence(t *testing.T) {
	base := DefaultConfig()
	base.Merge(&Config{
		Convert: ConvertConfig{OutDir: "converted"},
		Matcher: MatcherConfig{Jar: "/opt/logmap/logmap-matcher-4.0.jar", MaxHeap: "16g"},
	})

	// Overridden values win.
	assert.Equal(t, "converted", base.Convert.OutDir)
	assert.Equal(t, "/opt/logmap/logmap-matcher-4.0.jar", base.Matcher.Jar)
	assert.Equal(t, "16g", base.Matcher.MaxHeap)

	// Untouched values keep their defaults.
	assert.Equal(t, "java", base.Matcher.Java)
	assert.Equal(t, "500m", base.Matcher.MinHeap)
	assert.Equal(t, "output", base.Review.OutDir)
}

func TestMergeNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(nil)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sssomtool.yaml")
	content := `matcher:
  jar: /opt/logmap/logmap.jar
  max_heap: 8g
review:
  out_dir: reviewed
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/logmap/logmap.jar", cfg.Matcher.Jar)
	assert.Equal(t, "8g", cfg.Matcher.MaxHeap)
	assert.Equal(t, "reviewed", cfg.Review.OutDir)
	// Fields absent from the file keep defaults.
	assert.Equal(t, "java", cfg.Matcher.Java)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Matcher.Jar = "/tmp/matcher.jar"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Matcher.Jar, loaded.Matcher.Jar)
	assert.Equal(t, cfg.Review.OutDir, loaded.Review.OutDir)
}
