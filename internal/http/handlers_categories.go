package http

import (
	"net/http"
)

type categoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ct, err := parseCategoryType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	categories, err := s.ledger.Categories(r.Context(), ct)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ct, err := parseCategoryType(req.Type)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := s.ledger.AddCategory(r.Context(), ct, req.Name, req.Icon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ct, err := parseCategoryType(req.Type)
	if err != nil {
		writeError(w, err)
		return
	}

	oldName := r.PathValue("name")
	if err := s.ledger.RenameCategory(r.Context(), ct, oldName, req.Name, req.Icon); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ct, err := parseCategoryType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ledger.DeleteCategory(r.Context(), ct, r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
