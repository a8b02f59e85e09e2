package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/transfer"
)

// handleExport serves a collection as a download. Sessions are enriched with
// exercise details unless ?enriched=false.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var (
		data []byte
		err  error
	)
	if key == models.KeySessions && r.URL.Query().Get("enriched") != "false" {
		data, err = s.transfer.ExportEnrichedSessions(r.Context())
	} else {
		data, err = s.transfer.ExportCollection(r.Context(), key)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.FileName(key)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	policy, err := transfer.ParsePolicy(r.URL.Query().Get("policy"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.transfer.ImportCollection(r.Context(), chi.URLParam(r, "key"), doc, policy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
