package core

import (
	"context"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/Zilo-22/catalogBuddy/internal/logging"
)

// TemplateStore provides the export templates available to transforms.
type TemplateStore interface {
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, templateKey string) (Template, error)
}

// MappingStore persists per-template mapping preferences between sessions.
type MappingStore interface {
	Get(ctx context.Context, templateKey string) (MappingPrefs, error)
	Save(ctx context.Context, templateKey string, prefs MappingPrefs) error
}

// TransformRequest carries everything one transform needs: the raw upload,
// the target template and the user's column mapping.
type TransformRequest struct {
	TemplateKey    string
	FileName       string
	Data           []byte
	Mapping        Mapping
	CleanupColumns []string
}

// TransformResult is the output header plus a single-pass row sequence ready
// for serialization. FileName is the download name, defaulted when the
// request leaves it blank.
type TransformResult struct {
	FileName string
	Header   []string
	Rows     iter.Seq[[]string]
}

// Service wires the reshaping engine to its stores. It owns no state beyond
// the store handles and is safe for concurrent use.
type Service struct {
	templates TemplateStore
	mappings  MappingStore
}

func NewService(templates TemplateStore, mappings MappingStore) *Service {
	return &Service{templates: templates, mappings: mappings}
}

// ListTemplates returns every available export template.
func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.templates.List(ctx)
}

// GetTemplate returns one template by key.
func (s *Service) GetTemplate(ctx context.Context, templateKey string) (Template, error) {
	return s.templates.Get(ctx, templateKey)
}

// GetMappingPrefs returns the saved mapping preferences for a template, or
// empty defaults when nothing has been saved yet.
func (s *Service) GetMappingPrefs(ctx context.Context, templateKey string) (MappingPrefs, error) {
	return s.mappings.Get(ctx, templateKey)
}

// SaveMappingPrefs persists mapping preferences for a template, replacing any
// earlier save.
func (s *Service) SaveMappingPrefs(ctx context.Context, templateKey string, prefs MappingPrefs) error {
	return s.mappings.Save(ctx, templateKey, prefs)
}

// Transform parses the uploaded CSV, applies text cleanup and reshapes the
// rows for the requested template. Configuration problems (unknown template,
// unmapped required field) come back as *ValidationError; anything else is an
// input or store failure.
func (s *Service) Transform(ctx context.Context, req TransformRequest) (*TransformResult, error) {
	log := logging.FromContext(ctx)
	jobID := uuid.New().String()

	tpl, err := s.templates.Get(ctx, req.TemplateKey)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown templateKey %q", req.TemplateKey)}
	}

	table, err := ParseTable(req.Data)
	if err != nil {
		return nil, err
	}

	table.ApplyCleanup(req.CleanupColumns)

	header, rows, err := Reshape(table, tpl, req.Mapping)
	if err != nil {
		return nil, err
	}

	log.Info("transform prepared",
		"jobId", jobID,
		"templateKey", tpl.TemplateKey,
		"inputRows", table.RowCount(),
		"outputColumns", len(header),
	)

	fileName := req.FileName
	if fileName == "" {
		fileName = DefaultExportFileName
	}

	return &TransformResult{FileName: fileName, Header: header, Rows: rows}, nil
}
