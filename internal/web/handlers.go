package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Zilo-22/catalogBuddy/internal/core"
	"github.com/Zilo-22/catalogBuddy/internal/logging"
)

// multipartMemoryLimit caps how much of a multipart body is held in memory;
// larger uploads spill to temp files.
const multipartMemoryLimit = 32 << 20

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleListTemplates returns every available export template.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.service.ListTemplates(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if templates == nil {
		templates = []core.Template{}
	}
	writeJSON(w, map[string]any{"templates": templates})
}

// handleGetTemplate returns one template by key.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateKey := chi.URLParam(r, "templateKey")

	tpl, err := s.service.GetTemplate(r.Context(), templateKey)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, tpl)
}

// handleGetMapping returns the saved mapping preferences for a template.
// Templates without a save get empty defaults, never a 404, so the client
// can always render its mapping form.
func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	templateKey := chi.URLParam(r, "templateKey")

	prefs, err := s.service.GetMappingPrefs(r.Context(), templateKey)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, prefs)
}

// handleSaveMapping persists mapping preferences posted as form fields. The
// mapping field must be a JSON object of field key to column name; the
// textCleanup field is optional and ignored when malformed.
func (s *Server) handleSaveMapping(w http.ResponseWriter, r *http.Request) {
	templateKey := chi.URLParam(r, "templateKey")

	mapping, err := parseMapping(r.FormValue("mapping"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	prefs := core.MappingPrefs{
		Mapping:     mapping,
		TextCleanup: parseTextCleanup(r.FormValue("textCleanup")),
	}

	if err := s.service.SaveMappingPrefs(r.Context(), templateKey, prefs); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleTransform accepts a multipart CSV upload plus transform parameters
// and streams the reshaped export back as a CSV attachment.
//
// Form fields:
//   - file: the source CSV (required)
//   - templateKey: the target template (required)
//   - mapping: JSON object of field key to source column (required)
//   - textCleanup: optional JSON {"columns": [...]} of columns to clean
//   - filename: optional download name
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	mapping, err := parseMapping(r.FormValue("mapping"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	req := core.TransformRequest{
		TemplateKey:    r.FormValue("templateKey"),
		FileName:       r.FormValue("filename"),
		Data:           data,
		Mapping:        mapping,
		CleanupColumns: parseTextCleanup(r.FormValue("textCleanup")).Columns,
	}

	result, err := s.service.Transform(r.Context(), req)
	if err != nil {
		var ve *core.ValidationError
		switch {
		case errors.As(err, &ve):
			s.respondError(w, r, err, http.StatusBadRequest)
		case core.IsUserFacing(err):
			s.respondError(w, r, err, http.StatusBadRequest)
		default:
			s.respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFileName(result.FileName)))

	if err := core.WriteCSV(w, result.Header, result.Rows); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		logging.FromContext(r.Context()).Error("export stream failed", "error", err)
	}
}

// parseMapping decodes the mapping form field. An absent or malformed field
// is a client error; transforms cannot run without knowing the columns.
func parseMapping(raw string) (core.Mapping, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("invalid mapping: field is empty")
	}
	var m core.Mapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}
	return m, nil
}

// parseTextCleanup decodes the optional textCleanup form field. Cleanup is
// best-effort, so malformed JSON degrades to no cleanup instead of failing
// the request.
func parseTextCleanup(raw string) core.TextCleanup {
	var tc core.TextCleanup
	if raw == "" {
		return tc
	}
	if err := json.Unmarshal([]byte(raw), &tc); err != nil {
		return core.TextCleanup{}
	}
	return tc
}

// sanitizeFileName strips characters that would break the
// Content-Disposition header.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\n", "")
	if name == "" {
		return core.DefaultExportFileName
	}
	return name
}
