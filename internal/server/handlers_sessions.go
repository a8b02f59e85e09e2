package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/views"
)

func (s *Server) sessionDetail(r *http.Request, session models.Session) views.SessionDetail {
	return views.DescribeSession(session, s.repo.LoadExercises(r.Context()))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.LoadSessions(r.Context()))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.repo.AddSession(r.Context(), models.NewSession(body.Name))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.repo.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionDetail(r, session))
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.repo.RenameSession(r.Context(), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.writeError(w, r, errConfirmationRequired)
		return
	}
	if err := s.repo.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSessionExercise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExerciseID string `json:"exerciseId"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.editor.AddExerciseToSession(r.Context(), chi.URLParam(r, "id"), body.ExerciseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionDetail(r, session))
}

func (s *Server) handleRemoveSessionExercise(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.writeError(w, r, errConfirmationRequired)
		return
	}
	session, err := s.editor.RemoveExerciseFromSession(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "exerciseID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionDetail(r, session))
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.editor.UpdateSet(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "exerciseID"), index, body.Field, body.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
