package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	apperrors "jobspec-miner/internal/errors"
	"jobspec-miner/internal/formatter"
	"jobspec-miner/internal/objectstore"
	"jobspec-miner/internal/session"

	"github.com/google/uuid"
)

// limit request bodies to 1MB
const maxBodyBytes = 1 << 20

var errExportsDisabled = errors.New("export publishing is not configured")

type APIHandler struct {
	sessions     *session.Manager
	exports      objectstore.FileStorer
	defaultModel string
	logger       *slog.Logger
}

// NewAPIHandler wires the HTTP shell. exports may be nil, which disables
// publishing reports to object storage.
func NewAPIHandler(sessions *session.Manager, exports objectstore.FileStorer, defaultModel string, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		sessions:     sessions,
		exports:      exports,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

type credentialRequest struct {
	APIKey string `json:"api_key"`
}

type inputRequest struct {
	Text string `json:"text"`
}

type extractRequest struct {
	Model string `json:"model"`
}

type sectionRequest struct {
	Expanded bool `json:"expanded"`
}

type errorResponse struct {
	Error   string        `json:"error"`
	Session *session.View `json:"session,omitempty"`
}

type publishResponse struct {
	FileName string `json:"file_name"`
	Location string `json:"location"`
}

func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Create()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, view)
}

func (h *APIHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.Get)
}

func (h *APIHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) HandleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.withSession(w, r, func(id uuid.UUID) (session.View, error) {
		return h.sessions.SetCredential(id, req.APIKey)
	})
}

func (h *APIHandler) HandleSetInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.withSession(w, r, func(id uuid.UUID) (session.View, error) {
		return h.sessions.SetInput(id, req.Text)
	})
}

func (h *APIHandler) HandleClearInput(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.ClearInput)
}

func (h *APIHandler) HandleLoadSample(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.LoadSample)
}

// HandleExtract runs one extraction and blocks until it finishes.
func (h *APIHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	// the body is optional
	var req extractRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}

	view, err := h.sessions.Extract(r.Context(), id, model)

	var xerr *apperrors.ExtractionError
	if errors.As(err, &xerr) {
		h.writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   apperrors.UserMessage(err),
			Session: &view,
		})
		return
	}

	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("extraction served", slog.String("session_id", id.String()), slog.String("model", model))
	h.writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) HandleRetry(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.Retry)
}

func (h *APIHandler) HandleExpandAll(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.ExpandAll)
}

func (h *APIHandler) HandleCollapseAll(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.sessions.CollapseAll)
}

func (h *APIHandler) HandleSetSection(w http.ResponseWriter, r *http.Request) {

	index, err := strconv.Atoi(r.PathValue("section"))
	if err != nil {
		http.Error(w, "Invalid section index", http.StatusBadRequest)
		return
	}

	var req sectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.withSession(w, r, func(id uuid.UUID) (session.View, error) {
		return h.sessions.SetSection(id, session.Section(index), req.Expanded)
	})
}

// HandleExport serves the current result as a downloadable report.
func (h *APIHandler) HandleExport(w http.ResponseWriter, r *http.Request) {

	export, _, ok := h.render(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, export.Content); err != nil {
		h.logger.Error("failed to write export", slog.Any("error", err))
	}
}

// HandlePublishExport uploads the current report to the export bucket.
func (h *APIHandler) HandlePublishExport(w http.ResponseWriter, r *http.Request) {

	if h.exports == nil {
		h.writeError(w, errExportsDisabled)
		return
	}

	export, id, ok := h.render(w, r)
	if !ok {
		return
	}

	key := path.Join(id.String(), export.FileName)

	location, err := h.exports.Upload(r.Context(), strings.NewReader(export.Content), key, export.ContentType)
	if err != nil {
		h.logger.Error("failed to publish export", slog.String("key", key), slog.Any("error", err))
		http.Error(w, "Failed to publish export", http.StatusBadGateway)
		return
	}

	h.logger.Info("export published", slog.String("key", key))
	h.writeJSON(w, http.StatusCreated, publishResponse{FileName: export.FileName, Location: location})
}

// HandleFetchExport returns a report previously published for the session.
func (h *APIHandler) HandleFetchExport(w http.ResponseWriter, r *http.Request) {

	if h.exports == nil {
		h.writeError(w, errExportsDisabled)
		return
	}

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if _, err := h.sessions.Get(id); err != nil {
		h.writeError(w, err)
		return
	}

	name := r.PathValue("name")
	format, err := formatter.ParseFormat(strings.TrimPrefix(path.Ext(name), "."))
	if err != nil || !strings.HasPrefix(name, "job_extraction_") {
		http.Error(w, "Invalid export name", http.StatusBadRequest)
		return
	}

	body, err := h.exports.Download(r.Context(), path.Join(id.String(), name))
	if err != nil {
		h.logger.Error("failed to fetch export", slog.String("name", name), slog.Any("error", err))
		http.Error(w, "Export not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write export", slog.String("name", name), slog.Any("error", err))
	}
}

func (h *APIHandler) render(w http.ResponseWriter, r *http.Request) (formatter.Export, uuid.UUID, bool) {

	id, ok := h.sessionID(w, r)
	if !ok {
		return formatter.Export{}, uuid.Nil, false
	}

	format, err := formatter.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, "Unsupported format, use ?format=txt or ?format=json", http.StatusBadRequest)
		return formatter.Export{}, uuid.Nil, false
	}

	info, at, err := h.sessions.Result(id)
	if err != nil {
		h.writeError(w, err)
		return formatter.Export{}, uuid.Nil, false
	}

	export, err := formatter.Render(info, at, format)
	if err != nil {
		h.writeError(w, err)
		return formatter.Export{}, uuid.Nil, false
	}

	return export, id, true
}

func (h *APIHandler) withSession(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID) (session.View, error)) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := fn(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid session id format", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, session.ErrNotFound):
		status, msg = http.StatusNotFound, "Session not found or expired"
	case errors.Is(err, session.ErrNoResult):
		status, msg = http.StatusNotFound, "No extraction result to export"
	case errors.Is(err, session.ErrUnknownSection):
		status, msg = http.StatusBadRequest, "Unknown section"
	case errors.Is(err, apperrors.ErrInvalidCredential), errors.Is(err, apperrors.ErrInvalidContent):
		status, msg = http.StatusBadRequest, apperrors.UserMessage(err)
	case errors.Is(err, apperrors.ErrExtractionInProgress):
		status, msg = http.StatusConflict, apperrors.UserMessage(err)
	case errors.Is(err, errExportsDisabled):
		status, msg = http.StatusNotImplemented, err.Error()
	default:
		h.logger.Error("request failed", slog.Any("error", err))
	}

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}
