// Package handler provides HTTP handlers for the search API.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/domain"
	apperrors "github.com/rsmmonaem/voter-talika/pkg/errors"
)

// VoterHandler serves voter search and the filter tree
type VoterHandler struct {
	voterService domain.VoterService
	logger       domain.Logger
}

// NewVoterHandler creates a new voter handler
func NewVoterHandler(voterService domain.VoterService, logger domain.Logger) *VoterHandler {
	return &VoterHandler{
		voterService: voterService,
		logger:       logger,
	}
}

// SearchVoters handles GET /api/voters
func (h *VoterHandler) SearchVoters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := intParam(query.Get("page"), "page")
	if err != nil {
		writeAppError(w, err)
		return
	}
	limit, err := intParam(query.Get("limit"), "limit")
	if err != nil {
		writeAppError(w, err)
		return
	}

	filter := domain.VoterFilter{
		Query:    query.Get("q"),
		Upazila:  query.Get("upazila"),
		Union:    query.Get("union"),
		Ward:     query.Get("ward"),
		AreaCode: query.Get("area_code"),
		DOB:      query.Get("dob"),
		Page:     page,
		Limit:    limit,
	}

	result, err := h.voterService.Search(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetFilters handles GET /api/filters
func (h *VoterHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	tree, err := h.voterService.Filters(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// writeServiceError logs store-side failures before writing the response.
// Client mistakes are only answered.
func (h *VoterHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		h.logger.Error("Request failed", err, "path", r.URL.Path)
	}
	writeAppError(w, err)
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("Invalid "+name, name+" must be an integer")
	}
	return n, nil
}
