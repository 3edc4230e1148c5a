package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/internal/storage"
	"pg-backend/internal/ws"
	"pg-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ComplaintHandler struct {
	Service *services.ComplaintService
	Tenants *services.TenantService
	Files   storage.FileStore
	Hub     *ws.Hub
}

func NewComplaintHandler(service *services.ComplaintService, tenants *services.TenantService, files storage.FileStore, hub *ws.Hub) *ComplaintHandler {
	return &ComplaintHandler{
		Service: service,
		Tenants: tenants,
		Files:   files,
		Hub:     hub,
	}
}

// Create files a complaint for the calling tenant. The body is a multipart
// form with title, description, category and an optional "photo" file.
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	req := models.CreateComplaintRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	var photoURL string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		url, err := h.Files.Save(r.Context(), "complaint-photos", header.Filename, file)
		if err != nil {
			respondError(w, err)
			return
		}
		photoURL = url
	}

	complaint, err := h.Service.CreateComplaint(r.Context(), tenant.ID, &req, photoURL)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, complaint)
}

// List returns all complaints for admins and the caller's own for tenants
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		complaints, err := h.Service.ListComplaints(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, complaints)
		return
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return
	}
	complaints, err := h.Service.ListTenantComplaints(r.Context(), tenant.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, complaints)
}

func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		complaint, err := h.Service.GetComplaint(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, complaint)
		return
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return
	}
	complaint, err := h.Service.GetTenantComplaint(r.Context(), id, tenant.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, complaint)
}

// UpdateStatus moves the complaint through its lifecycle (admin). The owning
// tenant is notified, live over the websocket stream when connected.
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	var req models.UpdateComplaintStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	complaint, notification, err := h.Service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.Hub.Push(notification)
	utils.JSON(w, http.StatusOK, complaint)
}

// AddComment appends to the complaint's thread. Admins can comment on any
// complaint; tenants only on their own.
func (h *ComplaintHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role != models.RoleAdmin {
		tenant, ok := h.selfTenant(w, r)
		if !ok {
			return
		}
		if _, err := h.Service.GetTenantComplaint(r.Context(), id, tenant.ID); err != nil {
			respondError(w, err)
			return
		}
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.Service.AddComment(r.Context(), id, userID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, comment)
}

func (h *ComplaintHandler) selfTenant(w http.ResponseWriter, r *http.Request) (*models.TenantProfile, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}

	tenant, err := h.Tenants.GetSelf(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return tenant, true
}
