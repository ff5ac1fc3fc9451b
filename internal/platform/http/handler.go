package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/service"
)

type Handler struct {
	service service.Service
	logger  *zap.Logger
}

func NewHandler(s service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/scam-numbers", h.ListNumbers)
	r.Get("/v1/phone/{number}", h.CheckNumber)
	r.Post("/v1/calls", h.SubmitCall)
	r.Post("/v1/reports", h.CreateReport)
	r.Get("/v1/reports/{number}", h.ListReports)
}

func (h *Handler) ListNumbers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, NumbersResponse{Numbers: h.service.ListNumbers(r.Context())})
}

// CheckNumber answers a registry lookup only. Format is not validated.
func (h *Handler) CheckNumber(w http.ResponseWriter, r *http.Request) {
	phoneNumber := chi.URLParam(r, "number")

	h.writeJSON(w, http.StatusOK, CheckResponse{
		PhoneNumber: phoneNumber,
		IsScam:      h.service.IsScam(r.Context(), phoneNumber),
	})
}

func (h *Handler) SubmitCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON format"})
		return
	}

	screening := h.service.Screen(r.Context(), req.PhoneNumber)
	if screening.State == domain.StateRejected {
		h.writeJSON(w, http.StatusUnprocessableEntity, RejectionResponse{
			State:   screening.State,
			Code:    screening.Code,
			Message: screening.Message,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, screening)
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON format"})
		return
	}

	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reporterRaw := r.Header.Get("X-Reporter-ID")
	if reporterRaw == "" {
		reporterRaw = "anonymous"
	}

	err := h.service.ReportNumber(r.Context(), req.PhoneNumber, reporterRaw, req.Comment)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: vErr.Message, Code: vErr.Code})
			return
		}

		h.logger.Error("report ingestion failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	phoneNumber := chi.URLParam(r, "number")

	reports, err := h.service.GetReports(r.Context(), phoneNumber)
	if err != nil {
		h.logger.Error("report retrieval failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Error retrieval failed"})
		return
	}
	if reports == nil {
		reports = []*domain.Report{}
	}

	h.writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
