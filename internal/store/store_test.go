package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zilo-22/catalogBuddy/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTemplateStoreList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"templateKey":"beta","fields":[{"key":"sku","label":"SKU","type":"text"}],"exportRules":{"requiredFieldKey":"sku","dropRowIfBlankKeys":["sku"]}}`)
	writeFile(t, dir, "a.json", `{"templateKey":"alpha","fields":[],"exportRules":{}}`)
	writeFile(t, dir, "broken.json", `{not json`)
	writeFile(t, dir, "nokey.json", `{"fields":[]}`)
	writeFile(t, dir, "readme.txt", "not a template")

	s := NewTemplateStore(dir)
	templates, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}

	if len(templates) != 2 {
		t.Fatalf("List = %d templates, want 2", len(templates))
	}
	// Sorted by key, invalid documents skipped.
	if templates[0].TemplateKey != "alpha" || templates[1].TemplateKey != "beta" {
		t.Errorf("keys = [%s, %s], want [alpha, beta]", templates[0].TemplateKey, templates[1].TemplateKey)
	}
}

func TestTemplateStoreListMissingDir(t *testing.T) {
	s := NewTemplateStore(filepath.Join(t.TempDir(), "nope"))
	if _, err := s.List(context.Background()); err == nil {
		t.Error("List on missing dir = nil error, want error")
	}
}

func TestTemplateStoreGet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "p.json", `{"templateKey":"products","fields":[{"key":"sku","label":"SKU","type":"text"}],"exportRules":{"requiredFieldKey":"sku"}}`)

	s := NewTemplateStore(dir)

	tpl, err := s.Get(context.Background(), "products")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if tpl.ExportRules.RequiredFieldKey != "sku" {
		t.Errorf("RequiredFieldKey = %q, want sku", tpl.ExportRules.RequiredFieldKey)
	}

	if _, err := s.Get(context.Background(), "ghost"); err == nil {
		t.Error("Get(ghost) = nil error, want not found")
	}
}

func TestTemplateStorePicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	s := NewTemplateStore(dir)
	ctx := context.Background()

	if templates, _ := s.List(ctx); len(templates) != 0 {
		t.Fatalf("List = %d, want 0", len(templates))
	}

	// No restart needed; documents are read fresh per call.
	writeFile(t, dir, "new.json", `{"templateKey":"new","fields":[],"exportRules":{}}`)
	templates, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(templates) != 1 {
		t.Errorf("List after add = %d, want 1", len(templates))
	}
}

func TestMappingStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	s := NewMappingStore(path)
	ctx := context.Background()

	// Never-saved template gets defaults, not an error.
	prefs, err := s.Get(ctx, "products")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if prefs.Mapping == nil || len(prefs.Mapping) != 0 {
		t.Errorf("fresh prefs mapping = %v, want empty map", prefs.Mapping)
	}

	want := core.MappingPrefs{
		Mapping:     core.Mapping{"sku": "Variant SKU"},
		TextCleanup: core.TextCleanup{Columns: []string{"Title"}},
	}
	if err := s.Save(ctx, "products", want); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	got, err := s.Get(ctx, "products")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.Mapping["sku"] != "Variant SKU" {
		t.Errorf("Mapping = %v, want %v", got.Mapping, want.Mapping)
	}
	if len(got.TextCleanup.Columns) != 1 || got.TextCleanup.Columns[0] != "Title" {
		t.Errorf("TextCleanup = %v, want %v", got.TextCleanup, want.TextCleanup)
	}

	// Saves for other templates leave earlier keys alone.
	if err := s.Save(ctx, "inventory", core.MappingPrefs{Mapping: core.Mapping{"sku": "SKU"}}); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	again, _ := s.Get(ctx, "products")
	if again.Mapping["sku"] != "Variant SKU" {
		t.Errorf("earlier save lost after unrelated write: %v", again.Mapping)
	}
}

func TestMappingStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewMappingStore(path)
	ctx := context.Background()

	// Corrupt store degrades to empty rather than failing reads.
	prefs, err := s.Get(ctx, "products")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if len(prefs.Mapping) != 0 {
		t.Errorf("prefs from corrupt store = %v, want defaults", prefs)
	}

	// And saving over it works.
	if err := s.Save(ctx, "products", core.MappingPrefs{Mapping: core.Mapping{"a": "b"}}); err != nil {
		t.Fatalf("Save over corrupt store error = %v", err)
	}
	got, _ := s.Get(ctx, "products")
	if got.Mapping["a"] != "b" {
		t.Errorf("Mapping = %v, want saved value", got.Mapping)
	}
}
