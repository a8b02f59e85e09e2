package server

import (
	"net/http"

	"github.com/claude/repbook/internal/models"
)

type themeBody struct {
	Theme models.Theme `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: s.repo.LoadTheme(r.Context())})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.repo.SaveTheme(r.Context(), body.Theme); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.repo.ToggleTheme(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: t})
}
