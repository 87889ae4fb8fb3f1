package api

import (
	"net/http"
)

func NewRouter(h *APIHandler) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.HandleHealth)

	mux.HandleFunc("POST /sessions", h.HandleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.HandleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.HandleDeleteSession)

	mux.HandleFunc("PUT /sessions/{id}/credential", h.HandleSetCredential)
	mux.HandleFunc("PUT /sessions/{id}/input", h.HandleSetInput)
	mux.HandleFunc("DELETE /sessions/{id}/input", h.HandleClearInput)
	mux.HandleFunc("POST /sessions/{id}/sample", h.HandleLoadSample)

	mux.HandleFunc("POST /sessions/{id}/extractions", h.HandleExtract)
	mux.HandleFunc("POST /sessions/{id}/retry", h.HandleRetry)

	mux.HandleFunc("POST /sessions/{id}/sections/expand", h.HandleExpandAll)
	mux.HandleFunc("POST /sessions/{id}/sections/collapse", h.HandleCollapseAll)
	mux.HandleFunc("PUT /sessions/{id}/sections/{section}", h.HandleSetSection)

	mux.HandleFunc("GET /sessions/{id}/export", h.HandleExport)
	mux.HandleFunc("POST /sessions/{id}/exports", h.HandlePublishExport)
	mux.HandleFunc("GET /sessions/{id}/exports/{name}", h.HandleFetchExport)

	return mux
}
