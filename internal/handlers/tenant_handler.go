package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pg-backend/internal/cache"
	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/internal/storage"
	"pg-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// Uploaded files are capped at 10 MB
const maxUploadSize = 10 << 20

type TenantHandler struct {
	Service *services.TenantService
	Files   storage.FileStore
}

func NewTenantHandler(service *services.TenantService, files storage.FileStore) *TenantHandler {
	return &TenantHandler{Service: service, Files: files}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := h.Service.CreateTenant(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateTenantCaches(r.Context())
	utils.JSON(w, http.StatusCreated, tenant)
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.TenantsListKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	tenants, err := h.Service.ListTenants(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if data, err := json.Marshal(tenants); err == nil {
		cache.SetCached(r.Context(), cache.TenantsListKey, data, 5*time.Minute)
	}
	utils.JSON(w, http.StatusOK, tenants)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	tenant, err := h.Service.GetTenant(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	var req models.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := h.Service.UpdateTenant(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateTenantCaches(r.Context())
	utils.JSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	if err := h.Service.DeleteTenant(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateTenantCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Tenant deleted"})
}

// Me returns the caller's own profile. The profile is resolved from the
// authenticated user, never from a client-supplied ID.
func (h *TenantHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	tenant, err := h.Service.GetSelf(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}

// UploadIDProof stores the caller's identity document (multipart field "document")
func (h *TenantHandler) UploadIDProof(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	tenant, err := h.Service.GetSelf(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.storeIDProof(w, r, tenant.ID)
}

// UploadIDProofFor stores an identity document for a specific tenant. Admins
// can target any tenant; tenants only their own profile.
func (h *TenantHandler) UploadIDProofFor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role != models.RoleAdmin {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
			return
		}
		tenant, err := h.Service.GetSelf(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if tenant.ID != id {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
	}

	h.storeIDProof(w, r, id)
}

func (h *TenantHandler) storeIDProof(w http.ResponseWriter, r *http.Request, tenantID int) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	url, err := h.Files.Save(r.Context(), "id-proofs", header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Service.SubmitIDProof(r.Context(), tenantID, url)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

// VerifyIDProof marks a tenant's identity document as verified (admin)
func (h *TenantHandler) VerifyIDProof(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	tenant, err := h.Service.VerifyIDProof(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}
