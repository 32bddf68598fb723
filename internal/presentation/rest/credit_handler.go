package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/application/usecase"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/pkg/auth"
)

// maxBodyBytes bounds request bodies on the credit routes.
const maxBodyBytes = 64 << 10

// CreditHandler exposes quoting and assessment lookup over HTTP.
type CreditHandler struct {
	quote  *usecase.QuoteUseCase
	get    *usecase.GetAssessmentUseCase
	list   *usecase.ListAssessmentsUseCase
	logger *slog.Logger
}

// NewCreditHandler creates the credit HTTP handler.
func NewCreditHandler(
	quote *usecase.QuoteUseCase,
	get *usecase.GetAssessmentUseCase,
	list *usecase.ListAssessmentsUseCase,
	logger *slog.Logger,
) *CreditHandler {
	return &CreditHandler{quote: quote, get: get, list: list, logger: logger}
}

// RegisterRoutes attaches the credit routes. Quotes are public; assessment
// reads go through authn, which must store auth.Claims on the context.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /v1/credit/quote", h.handleQuote)
	mux.Handle("GET /v1/credit/assessments/{id}", authn(http.HandlerFunc(h.handleGet)))
	mux.Handle("GET /v1/credit/applicants/{applicantID}/assessments", authn(http.HandlerFunc(h.handleList)))
}

func (h *CreditHandler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := h.quote.Execute(req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.get.Execute(r.Context(), dto.GetAssessmentRequest{
		TenantID:     claims.TenantID.String(),
		AssessmentID: r.PathValue("id"),
	})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	resp, err := h.list.Execute(r.Context(), dto.ListAssessmentsRequest{
		TenantID:    claims.TenantID.String(),
		ApplicantID: r.PathValue("applicantID"),
		Limit:       limit,
	})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, "assessment not found")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
