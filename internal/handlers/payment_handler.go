package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/internal/storage"
	"pg-backend/internal/ws"
	"pg-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service  *services.PaymentService
	Tenants  *services.TenantService
	Receipts *services.ReceiptService
	Files    storage.FileStore
	Hub      *ws.Hub
}

func NewPaymentHandler(service *services.PaymentService, tenants *services.TenantService, receipts *services.ReceiptService, files storage.FileStore, hub *ws.Hub) *PaymentHandler {
	return &PaymentHandler{
		Service:  service,
		Tenants:  tenants,
		Receipts: receipts,
		Files:    files,
		Hub:      hub,
	}
}

// parseCreateRequest accepts either a JSON body or a multipart form with an
// optional "proof" file. The uploaded proof wins over any proof_url field.
func (h *PaymentHandler) parseCreateRequest(r *http.Request) (*models.CreatePaymentRequest, error) {
	var req models.CreatePaymentRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, fmt.Errorf("invalid multipart form")
		}

		req.MonthFor = r.FormValue("month_for")
		req.Type = r.FormValue("type")
		if v := r.FormValue("amount"); v != "" {
			amount, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid amount")
			}
			req.Amount = amount
		}
		if v := r.FormValue("tenant_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid tenant_id")
			}
			req.TenantID = &id
		}

		if file, header, err := r.FormFile("proof"); err == nil {
			defer file.Close()
			url, err := h.Files.Save(r.Context(), "payment-proofs", header.Filename, file)
			if err != nil {
				return nil, err
			}
			req.ProofURL = url
		}
		return &req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}
	return &req, nil
}

// Create records a payment. Tenants always record for themselves and start
// PENDING; admin entries are trusted and start VERIFIED.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseCreateRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		payment, err := h.Service.RecordAdminPayment(r.Context(), req)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, payment)
		return
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return
	}
	payment, err := h.Service.RecordTenantPayment(r.Context(), tenant.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}

// List returns all payments for admins and the caller's own for tenants
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		payments, err := h.Service.ListPayments(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, payments)
		return
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return
	}
	payments, err := h.Service.ListTenantPayments(r.Context(), tenant.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// Verify finalizes a PENDING payment (admin). The owning tenant is notified,
// live over the websocket stream when connected.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, notification, err := h.Service.VerifyPayment(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.Hub.Push(notification)
	utils.JSON(w, http.StatusOK, payment)
}

// Balance returns the live balance for one tenant+month. Admins can query any
// tenant; tenants only themselves.
func (h *PaymentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["tenant_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}
	if !h.allowTenantScope(w, r, tenantID) {
		return
	}

	balance, err := h.Service.MonthlyBalance(r.Context(), tenantID, mux.Vars(r)["month"])
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, balance)
}

// Summary returns the per-month payment summary. Admins can query any tenant;
// tenants only themselves.
func (h *PaymentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["tenant_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid tenant ID")
		return
	}
	if !h.allowTenantScope(w, r, tenantID) {
		return
	}

	summary, err := h.Service.MonthlySummary(r.Context(), tenantID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// Proof attaches an uploaded proof file to a payment (multipart field
// "proof"). Tenants can only attach to their own payments.
func (h *PaymentHandler) Proof(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	payment, err := h.Service.GetPayment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !h.allowPaymentAccess(w, r, payment) {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "proof file is required")
		return
	}
	defer file.Close()

	url, err := h.Files.Save(r.Context(), "payment-proofs", header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Service.AttachProof(r.Context(), id, url)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

// Receipt streams a PDF receipt for a verified payment. Tenants can only
// fetch receipts for their own payments.
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	payment, err := h.Service.GetPayment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if !h.allowPaymentAccess(w, r, payment) {
		return
	}

	pdf, err := h.Receipts.GenerateReceipt(payment)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", payment.ID))
	w.Write(pdf)
}

// selfTenant resolves the caller's tenant profile from the authenticated user
func (h *PaymentHandler) selfTenant(w http.ResponseWriter, r *http.Request) (*models.TenantProfile, bool) {
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

// allowTenantScope lets admins act on any tenant and tenants only on their
// own profile. Another tenant's records read as not found.
func (h *PaymentHandler) allowTenantScope(w http.ResponseWriter, r *http.Request, tenantID int) bool {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		return true
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return false
	}
	if tenant.ID != tenantID {
		utils.Error(w, http.StatusNotFound, "not found")
		return false
	}
	return true
}

// allowPaymentAccess applies the same scoping to a single payment row
func (h *PaymentHandler) allowPaymentAccess(w http.ResponseWriter, r *http.Request, payment *models.Payment) bool {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		return true
	}

	tenant, ok := h.selfTenant(w, r)
	if !ok {
		return false
	}
	if payment.TenantID == nil || *payment.TenantID != tenant.ID {
		utils.Error(w, http.StatusNotFound, "not found")
		return false
	}
	return true
}
