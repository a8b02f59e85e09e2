package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/views"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	opts := views.ListOptions{
		Query:  r.URL.Query().Get("q"),
		Sort:   views.SortName,
		Locale: s.opts.Locale,
	}
	if raw := r.URL.Query().Get("sort"); raw != "" {
		c, err := views.ParseSortCriterion(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		opts.Sort = c
	}

	list := views.ListExercises(s.repo.LoadExercises(r.Context()), opts)
	if r.URL.Query().Get("group") == "true" && list.Groups == nil {
		list.Groups = views.GroupByMuscleGroup(list.Exercises)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if err := decodeBody(r, &e); err != nil {
		s.writeError(w, r, err)
		return
	}
	if e.ID == "" {
		e.ID = models.NextExerciseID(time.Now(), s.repo.LoadExercises(r.Context()))
	}
	created, err := s.repo.AddExercise(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	e, err := s.repo.GetExercise(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if err := decodeBody(r, &e); err != nil {
		s.writeError(w, r, err)
		return
	}
	e.ID = chi.URLParam(r, "id")
	updated, err := s.repo.UpdateExercise(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteExercise(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNextSort(w http.ResponseWriter, r *http.Request) {
	next := views.CycleSortCriterion(views.SortCriterion(r.URL.Query().Get("current")))
	writeJSON(w, http.StatusOK, map[string]views.SortCriterion{"sort": next})
}
