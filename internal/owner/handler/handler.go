// Package handler exposes the admin owner endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/owner/models"
	jsonResponse "propertyhub/internal/transport/http/json"
	"propertyhub/internal/transport/http/shared"
	"propertyhub/internal/validate"
	"propertyhub/pkg/domain"
)

// Service defines the owner operations the handler delegates to.
type Service interface {
	List(ctx context.Context, filter models.ListFilter) (*models.Page, error)
	UpdateStatus(ctx context.Context, id domain.OwnerID, status domain.OwnerStatus) (*models.Owner, error)
}

// Handler handles the owner listing and moderation endpoints.
type Handler struct {
	owners Service
	logger *slog.Logger
}

// New creates an owner Handler.
func New(owners Service, logger *slog.Logger) *Handler {
	return &Handler{owners: owners, logger: logger}
}

// Register registers the owner routes. The parent router mounts these behind
// the admin role check.
func (h *Handler) Register(r chi.Router) {
	r.Get("/owners", h.HandleList)
	r.Patch("/owners/status", h.HandleUpdateStatus)
}

// queryKeys are the query parameters the listing schema understands.
var queryKeys = []string{"page", "limit", "search", "status", "stateId", "cityId"}

type ownerResponse struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
	StateID       int64  `json:"stateId,omitempty"`
	CityID        int64  `json:"cityId,omitempty"`
	PropertyCount int    `json:"propertyCount"`
}

type pageResponse struct {
	Owners     []ownerResponse `json:"owners"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// HandleList implements GET /owners. Query parameters run through the same
// schema engine as request bodies; page and limit come back defaulted.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input := make(map[string]any)
	query := r.URL.Query()
	for _, key := range queryKeys {
		if v := query.Get(key); v != "" {
			input[key] = v
		}
	}

	res := validate.OwnerListQuery.Validate(input)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	filter := models.ListFilter{
		Search: shared.Str(res.Value, "search"),
		Status: domain.OwnerStatus(shared.Str(res.Value, "status")),
	}
	page, _ := shared.Int64(res.Value, "page")
	limit, _ := shared.Int64(res.Value, "limit")
	filter.Page = int(page)
	filter.Limit = int(limit)
	if stateID, ok := shared.Int64(res.Value, "stateId"); ok {
		filter.StateID = domain.StateID(stateID)
	}
	if cityID, ok := shared.Int64(res.Value, "cityId"); ok {
		filter.CityID = domain.CityID(cityID)
	}

	result, err := h.owners.List(ctx, filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := pageResponse{
		Owners:     make([]ownerResponse, 0, len(result.Owners)),
		Total:      result.Total,
		Page:       result.PageNumber,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for _, owner := range result.Owners {
		resp.Owners = append(resp.Owners, newOwnerResponse(owner))
	}
	jsonResponse.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdateStatus implements PATCH /owners/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.OwnerStatusUpdate.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	ownerID, _ := shared.Int64(res.Value, "ownerId")
	status := domain.OwnerStatus(shared.Str(res.Value, "status"))

	owner, err := h.owners.UpdateStatus(ctx, domain.OwnerID(ownerID), status)
	if err != nil {
		h.logger.WarnContext(ctx, "owner status update failed",
			"error", err,
			"owner_id", ownerID,
		)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newOwnerResponse(owner))
}

func newOwnerResponse(owner *models.Owner) ownerResponse {
	return ownerResponse{
		ID:            int64(owner.ID),
		FirstName:     owner.FirstName,
		LastName:      owner.LastName,
		Email:         owner.Email,
		Phone:         owner.Phone,
		Status:        string(owner.Status),
		StateID:       int64(owner.StateID),
		CityID:        int64(owner.CityID),
		PropertyCount: owner.PropertyCount,
	}
}
