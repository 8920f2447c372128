// Package store persists templates and mapping preferences as JSON documents
// on the local filesystem. Templates are read-only operator-managed files;
// mapping preferences are written by the application.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Zilo-22/catalogBuddy/internal/core"
	"github.com/Zilo-22/catalogBuddy/internal/logging"
)

// TemplateStore serves export templates from a directory of JSON documents,
// one file per template. The directory is read fresh on every call so edits
// land without a restart.
type TemplateStore struct {
	dir string
}

func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// List returns every valid template in the directory, sorted by template key.
// Files that fail to parse or carry no templateKey are logged and skipped so
// one bad document cannot take the whole catalog offline.
func (s *TemplateStore) List(ctx context.Context) ([]core.Template, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir %s: %w", s.dir, err)
	}

	log := logging.FromContext(ctx)
	var templates []core.Template
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		tpl, err := readTemplate(path)
		if err != nil {
			log.Warn("skipping invalid template document", "path", path, "error", err)
			continue
		}
		templates = append(templates, tpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].TemplateKey < templates[j].TemplateKey
	})
	return templates, nil
}

// Get returns the template with the given key, or an error when no document
// carries it.
func (s *TemplateStore) Get(ctx context.Context, templateKey string) (core.Template, error) {
	templates, err := s.List(ctx)
	if err != nil {
		return core.Template{}, err
	}
	for _, tpl := range templates {
		if tpl.TemplateKey == templateKey {
			return tpl, nil
		}
	}
	return core.Template{}, fmt.Errorf("template not found: %s", templateKey)
}

func readTemplate(path string) (core.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Template{}, err
	}
	var tpl core.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return core.Template{}, fmt.Errorf("parse: %w", err)
	}
	if tpl.TemplateKey == "" {
		return core.Template{}, fmt.Errorf("missing templateKey")
	}
	return tpl, nil
}
