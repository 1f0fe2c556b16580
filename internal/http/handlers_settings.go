package http

import (
	"net/http"

	"kakeibo/internal/core"
)

type budgetRequest struct {
	IncomeItems       []budgetItem `json:"incomeItems"`
	FixedExpenseItems []budgetItem `json:"fixedExpenseItems"`
}

type budgetItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.ledger.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	income, err := toLineItems(req.IncomeItems)
	if err != nil {
		writeError(w, err)
		return
	}
	fixed, err := toLineItems(req.FixedExpenseItems)
	if err != nil {
		writeError(w, err)
		return
	}

	settings, err := s.ledger.UpdateBudget(r.Context(), income, fixed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func toLineItems(items []budgetItem) ([]core.LineItem, error) {
	out := make([]core.LineItem, 0, len(items))
	for _, item := range items {
		amount, err := parseAmount(item.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, core.LineItem{ID: item.ID, Label: item.Label, Amount: amount})
	}
	return out, nil
}
