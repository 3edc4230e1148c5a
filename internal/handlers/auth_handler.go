package handlers

import (
	"encoding/json"
	"net/http"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type AuthHandler struct {
	Users   *services.UserService
	Tenants *services.TenantService
}

func NewAuthHandler(users *services.UserService, tenants *services.TenantService) *AuthHandler {
	return &AuthHandler{Users: users, Tenants: tenants}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Users.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Credential failures surface as validation errors so a wrong email and a
	// wrong password read the same to the caller
	resp, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated account, with the tenant profile attached for
// tenant accounts.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := map[string]interface{}{"user": user}
	if user.Role == models.RoleTenant {
		if profile, err := h.Tenants.GetSelf(r.Context(), userID); err == nil {
			resp["profile"] = profile
		}
	}
	utils.JSON(w, http.StatusOK, resp)
}
