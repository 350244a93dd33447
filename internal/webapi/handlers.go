package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0"

// Handlers holds the HTTP handler methods for the viewer API.
type Handlers struct {
	store DatasetStore
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store DatasetStore) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleVideos returns the packaged video list. An empty or absent dataset
// is a normal response, not an error.
func (h *Handlers) HandleVideos(w http.ResponseWriter, _ *http.Request) {
	videos, err := h.store.ListVideos()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// HandleVideoDetail returns one video with its per-prompt results.
func (h *Handlers) HandleVideoDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "video id is required")
		return
	}

	detail, err := h.store.GetVideo(id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandlePromptDetail returns the golden answer and attempt history for one
// prompt.
func (h *Handlers) HandlePromptDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	promptID := r.PathValue("pid")
	if id == "" || promptID == "" {
		writeError(w, http.StatusBadRequest, "video id and prompt id are required")
		return
	}

	detail, err := h.store.GetPrompt(id, promptID)
	if err != nil {
		switch {
		case errors.Is(err, ErrVideoNotFound):
			writeError(w, http.StatusNotFound, "video not found")
		case errors.Is(err, ErrPromptNotFound):
			writeError(w, http.StatusNotFound, "prompt not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// RegisterRoutes registers all viewer API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store DatasetStore) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/videos", h.HandleVideos)
	mux.HandleFunc("GET /api/videos/{id}", h.HandleVideoDetail)
	mux.HandleFunc("GET /api/videos/{id}/prompts/{pid}", h.HandlePromptDetail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
