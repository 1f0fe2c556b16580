package http

import (
	"net/http"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
)

type methodRequest struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	StatementDay int    `json:"statementDay"`
	DueDayOffset int    `json:"dueDayOffset"`
}

type methodPatch struct {
	Name         *string `json:"name"`
	Color        *string `json:"color"`
	StatementDay *int    `json:"statementDay"`
	DueDayOffset *int    `json:"dueDayOffset"`
}

func (s *Server) handleListMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.ledger.ListMethods(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

func (s *Server) handleCreateMethod(w http.ResponseWriter, r *http.Request) {
	var req methodRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	method, err := s.ledger.AddMethod(r.Context(), ledger.MethodInput{
		Name:         req.Name,
		Color:        req.Color,
		StatementDay: req.StatementDay,
		DueDayOffset: req.DueDayOffset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, method)
}

func (s *Server) handleUpdateMethod(w http.ResponseWriter, r *http.Request) {
	var req methodPatch
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	method, err := s.ledger.UpdateMethod(r.Context(), r.PathValue("id"), ledger.MethodUpdate{
		Name:         req.Name,
		Color:        req.Color,
		StatementDay: req.StatementDay,
		DueDayOffset: req.DueDayOffset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

func (s *Server) handleMethodColors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.MethodColors)
}

func (s *Server) handleDeleteMethod(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteMethod(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
