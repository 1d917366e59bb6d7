// Package handler exposes the owner property endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/property/models"
	jsonResponse "propertyhub/internal/transport/http/json"
	"propertyhub/internal/transport/http/shared"
	"propertyhub/internal/validate"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// Service defines the property operations the handler delegates to.
type Service interface {
	Create(ctx context.Context, ownerID domain.OwnerID, in models.PropertyInput) (*models.Property, error)
	Update(ctx context.Context, ownerID domain.OwnerID, in models.PropertyInput) (*models.Property, error)
	List(ctx context.Context, ownerID domain.OwnerID) ([]*models.Property, error)
	Get(ctx context.Context, ownerID domain.OwnerID, id domain.PropertyID) (*models.Property, error)
}

// Handler handles the property endpoints. Routes are mounted behind the
// owner role check; the owner account shares the authenticated user's ID.
type Handler struct {
	properties Service
	logger     *slog.Logger
}

// New creates a property Handler.
func New(properties Service, logger *slog.Logger) *Handler {
	return &Handler{properties: properties, logger: logger}
}

// Register registers the property routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/properties", h.HandleList)
	r.Get("/properties/{property_id}", h.HandleGet)
	r.Post("/properties", h.HandleCreate)
	r.Put("/properties", h.HandleUpdate)
}

type propertyResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"propertyName"`
	State   string `json:"state"`
	City    string `json:"city"`
	Contact string `json:"propertyContact"`
	Address string `json:"propertyAddress"`
	Image   string `json:"image,omitempty"`
}

// HandleCreate implements POST /properties.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	property, err := h.properties.Create(ctx, callerOwnerID(ctx), in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusCreated, newPropertyResponse(property))
}

// HandleUpdate implements PUT /properties. The payload carries the property
// ID alongside the replacement fields.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	if in.ID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "property id is required"))
		return
	}

	property, err := h.properties.Update(ctx, callerOwnerID(ctx), in)
	if err != nil {
		h.logger.WarnContext(ctx, "property update failed",
			"error", err,
			"property_id", in.ID.String(),
		)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newPropertyResponse(property))
}

// HandleList implements GET /properties.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	properties, err := h.properties.List(ctx, callerOwnerID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := make([]propertyResponse, 0, len(properties))
	for _, property := range properties {
		resp = append(resp, newPropertyResponse(property))
	}
	jsonResponse.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet implements GET /properties/{property_id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParsePropertyID(chi.URLParam(r, "property_id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid property id"))
		return
	}

	property, err := h.properties.Get(ctx, callerOwnerID(ctx), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newPropertyResponse(property))
}

// decodeInput validates the body against the property schema and lifts it
// into the typed input. Returns ok=false after writing the error response.
func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (models.PropertyInput, bool) {
	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return models.PropertyInput{}, false
	}
	res := validate.Property.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return models.PropertyInput{}, false
	}

	in := models.PropertyInput{
		Name:     shared.Str(res.Value, "propertyName"),
		State:    shared.Str(res.Value, "state"),
		City:     shared.Str(res.Value, "city"),
		Contact:  shared.Str(res.Value, "propertyContact"),
		Address:  shared.Str(res.Value, "propertyAddress"),
		ImageURL: shared.Str(res.Value, "image"),
	}
	if id, ok := shared.Int64(res.Value, "id"); ok {
		in.ID = domain.PropertyID(id)
	}
	if keep, ok := res.Value["useExistingImage"].(bool); ok {
		in.UseExistingImage = keep
	}
	return in, true
}

func callerOwnerID(ctx context.Context) domain.OwnerID {
	return domain.OwnerID(middleware.GetUserID(ctx))
}

func newPropertyResponse(property *models.Property) propertyResponse {
	return propertyResponse{
		ID:      int64(property.ID),
		Name:    property.Name,
		State:   property.State,
		City:    property.City,
		Contact: property.Contact,
		Address: property.Address,
		Image:   property.ImageURL,
	}
}
