package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Zilo-22/catalogBuddy/internal/core"
	"github.com/Zilo-22/catalogBuddy/internal/logging"
)

// MappingStore keeps every template's saved mapping preferences in one JSON
// file, keyed by template key. Saves are whole-file read-modify-write under a
// mutex; the last writer for a key wins.
type MappingStore struct {
	path string
	mu   sync.Mutex
}

func NewMappingStore(path string) *MappingStore {
	return &MappingStore{path: path}
}

// Get returns the saved preferences for a template. A template that has never
// been saved gets empty defaults, not an error, so the client can always
// render a mapping form.
func (s *MappingStore) Get(ctx context.Context, templateKey string) (core.MappingPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	if prefs, ok := all[templateKey]; ok {
		return prefs, nil
	}
	return core.MappingPrefs{
		Mapping:     core.Mapping{},
		TextCleanup: core.TextCleanup{Columns: []string{}},
	}, nil
}

// Save replaces the preferences stored for a template.
func (s *MappingStore) Save(ctx context.Context, templateKey string, prefs core.MappingPrefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	all[templateKey] = prefs

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("save mapping for %s: %w", templateKey, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save mapping for %s: %w", templateKey, err)
	}
	return nil
}

// load reads the store file leniently. A missing or corrupt file yields an
// empty store; saved preferences are a convenience, losing them must never
// block a save or a transform.
func (s *MappingStore) load(ctx context.Context) map[string]core.MappingPrefs {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.FromContext(ctx).Warn("mapping store unreadable, starting empty", "path", s.path, "error", err)
		}
		return map[string]core.MappingPrefs{}
	}

	var all map[string]core.MappingPrefs
	if err := json.Unmarshal(data, &all); err != nil {
		logging.FromContext(ctx).Warn("mapping store corrupt, starting empty", "path", s.path, "error", err)
		return map[string]core.MappingPrefs{}
	}
	if all == nil {
		return map[string]core.MappingPrefs{}
	}
	return all
}
