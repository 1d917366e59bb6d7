// Package handler exposes the authentication endpoints. Request bodies are
// decoded into generic maps and run through the named schemas before any
// typed input reaches the service layer.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/auth/models"
	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/session"
	jsonResponse "propertyhub/internal/transport/http/json"
	"propertyhub/internal/transport/http/shared"
	"propertyhub/internal/validate"
	"propertyhub/pkg/domain"
	"propertyhub/pkg/strutil"
)

// Service defines the authentication operations the handler delegates to.
type Service interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	ChangePassword(ctx context.Context, userID domain.UserID, currentPassword, newPassword string) error
	Logout(ctx context.Context)
}

// StateReader is the read side of the session manager.
type StateReader interface {
	State() session.AuthState
}

// Handler handles registration, login, logout, password change, and the auth
// state probe clients poll to decide which surface to render.
type Handler struct {
	auth     Service
	sessions StateReader
	logger   *slog.Logger
}

// New creates an auth Handler.
func New(auth Service, sessions StateReader, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, sessions: sessions, logger: logger}
}

// Register registers the auth routes with the chi router. Password change is
// mounted separately by the parent router behind the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/auth/state", h.HandleState)
}

// RegisterProtected registers the routes that require an authenticated user.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/change-password", h.HandleChangePassword)
}

// landingRoutes maps a role to the surface the client should land on after
// sign-in. Unauthenticated sessions land on login.
var landingRoutes = map[domain.RoleID]string{
	domain.RoleAdmin:  "/admin/dashboard",
	domain.RoleOwner:  "/owner/dashboard",
	domain.RoleTenant: "/tenant/home",
}

type stateResponse struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Role            string `json:"role,omitempty"`
	LandingRoute    string `json:"landingRoute"`
}

// HandleState implements GET /auth/state.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State()
	resp := stateResponse{
		IsAuthenticated: st.IsAuthenticated,
		IsLoading:       st.IsLoading,
		LandingRoute:    "/login",
	}
	if st.IsAuthenticated {
		resp.Role = st.Role.String()
		if route, ok := landingRoutes[st.Role]; ok {
			resp.LandingRoute = route
		}
	}
	jsonResponse.WriteJSON(w, http.StatusOK, resp)
}

type authResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// HandleRegister implements POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.Register.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	in := models.RegisterInput{
		FirstName: shared.Str(res.Value, "firstName"),
		LastName:  shared.Str(res.Value, "lastName"),
		Email:     shared.Str(res.Value, "email"),
		Password:  shared.Str(res.Value, "password"),
	}
	strutil.TrimStrings(&in.FirstName, &in.LastName, &in.Email)
	if roleNum, ok := shared.Int64(res.Value, "role"); ok {
		in.Role = domain.RoleID(roleNum)
	}

	result, err := h.auth.Register(ctx, in)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusCreated, newAuthResponse(result))
}

// HandleLogin implements POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.Login.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	result, err := h.auth.Login(ctx, models.Credentials{
		Email:    shared.Str(res.Value, "email"),
		Password: shared.Str(res.Value, "password"),
		Device:   middleware.GetDevice(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newAuthResponse(result))
}

// HandleChangePassword implements POST /auth/change-password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.ChangePassword.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	err = h.auth.ChangePassword(ctx, userID,
		shared.Str(res.Value, "currentPassword"),
		shared.Str(res.Value, "newPassword"),
	)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// HandleLogout implements POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func newAuthResponse(result *models.AuthResult) authResponse {
	return authResponse{
		ID:        int64(result.User.ID),
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
		Email:     result.User.Email,
		Role:      result.User.Role.String(),
		Token:     result.Token,
	}
}
