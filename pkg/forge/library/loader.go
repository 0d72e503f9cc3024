package library

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rulesmith-hq/forge/pkg/forge/codec"
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/telemetry/metrics"
)

// Loader reads rule documents from a directory tree into a registry.
// Documents that fail to parse or validate are logged and skipped; one
// bad file never takes down the rest of the library.
type Loader struct {
	dir     string
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewLoader creates a loader for the given directory. The metrics
// collector may be nil.
func NewLoader(dir string, logger *slog.Logger, collector *metrics.Collector) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:     dir,
		logger:  logger.With("component", "forge.library"),
		metrics: collector,
	}
}

// Load walks the directory and returns entries for every valid rule
// document (.rbx or .json). Hidden files and directories are skipped.
func (l *Loader) Load() (map[string]*Entry, error) {
	entries := make(map[string]*Entry)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != l.dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isRuleFile(path) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Error("reading rule file failed", "path", path, "error", err)
			return nil
		}

		r, err := codec.FromJSON(data)
		if err != nil {
			l.metrics.RecordValidationFailure()
			l.logger.Error("rule file rejected", "path", path, "error", err)
			return nil
		}

		if prev, dup := entries[r.Slug]; dup {
			l.logger.Warn("duplicate slug, keeping first",
				"slug", r.Slug, "kept", prev.Path, "skipped", path)
			return nil
		}

		entries[r.Slug] = &Entry{Rule: r, Path: path, LoadedAt: time.Now()}
		l.metrics.RecordRuleLoaded()
		l.logger.Debug("rule loaded", "slug", r.Slug, "name", r.Name, "path", path)
		return nil
	})
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "walking library %s: %v", l.dir, err)
	}

	l.logger.Info("library loaded", "dir", l.dir, "rules", len(entries))
	return entries, nil
}

// LoadInto loads the directory and swaps the result into the registry.
func (l *Loader) LoadInto(reg *Registry) error {
	entries, err := l.Load()
	if err != nil {
		return err
	}
	reg.Replace(entries)
	return nil
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rbx", ".json":
		return true
	}
	return false
}
