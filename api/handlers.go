package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"finance-insights/database"
	models "finance-insights/database/models_pkg"
)

const (
	msgFieldsRequired = "All fields are required."
	msgInvalidDate    = "Dates must be YYYY-MM-DD."
	maxInsightsLimit  = 200
)

type createInvestmentRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	InvestmentType string           `json:"investment_type"`
	InvestmentDate string           `json:"investment_date"`
	MaturityDate   string           `json:"maturity_date"`
}

type createStatusRequest struct {
	InvestmentID int64            `json:"investment_id"`
	StatusDate   string           `json:"status_date"`
	CurrentValue *decimal.Decimal `json:"current_value"`
}

// handleHealth returns the health status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetInvestments(w http.ResponseWriter, r *http.Request) {
	rows, err := s.investments.List(r.Context())
	if err != nil {
		log.Printf("Error fetching investments: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching investments.")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req createInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount == nil || req.Amount.IsZero() || req.InvestmentType == "" || req.InvestmentDate == "" || req.MaturityDate == "" {
		writeError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	investmentDate, ok1 := parseDate(req.InvestmentDate)
	maturityDate, ok2 := parseDate(req.MaturityDate)
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}

	inv := &models.Investment{
		Amount:         req.Amount.Round(2),
		InvestmentType: req.InvestmentType,
		InvestmentDate: investmentDate,
		MaturityDate:   maturityDate,
	}
	if err := s.investments.Create(r.Context(), inv); err != nil {
		log.Printf("Error adding investment: %v", err)
		writeError(w, http.StatusInternalServerError, "Error adding investment.")
		return
	}

	writeMessage(w, "Investment added successfully ✅")
}

func (s *Server) handleGetInvestmentStatuses(w http.ResponseWriter, r *http.Request) {
	rows, err := s.investments.ListStatuses(r.Context())
	if err != nil {
		log.Printf("Error fetching investment statuses: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching investment statuses.")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateInvestmentStatus(w http.ResponseWriter, r *http.Request) {
	var req createStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.InvestmentID == 0 || req.StatusDate == "" || req.CurrentValue == nil || req.CurrentValue.IsZero() {
		writeError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	statusDate, ok := parseDate(req.StatusDate)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}

	status := &models.InvestmentStatus{
		InvestmentID: req.InvestmentID,
		StatusDate:   statusDate,
		CurrentValue: req.CurrentValue.Round(2),
	}
	if err := s.investments.CreateStatus(r.Context(), status); err != nil {
		log.Printf("Error updating investment status: %v", err)
		writeError(w, http.StatusInternalServerError, "Error updating investment status.")
		return
	}

	writeMessage(w, "Investment status updated successfully ✅")
}

func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", database.DefaultInsightPageSize, 1, maxInsightsLimit)
	entity := r.URL.Query().Get("entity_type")

	rows, err := s.insights.ListRecent(r.Context(), entity, limit)
	if err != nil {
		log.Printf("Error fetching insights: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching insights.")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
