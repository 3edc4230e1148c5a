package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/internal/ws"
	"pg-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Hub     *ws.Hub
}

func NewNotificationHandler(service *services.NotificationService, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{Service: service, Hub: hub}
}

// Send delivers a notification to one user, or to everyone with broadcast
// set (admin). Connected recipients also get it over the websocket stream.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Broadcast {
		created, err := h.Service.Broadcast(r.Context(), req.Message)
		if err != nil {
			respondError(w, err)
			return
		}
		h.Hub.PushAll(created)
		utils.JSON(w, http.StatusCreated, map[string]interface{}{"sent": len(created)})
		return
	}

	n, err := h.Service.Send(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	h.Hub.Push(n)
	utils.JSON(w, http.StatusCreated, n)
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	notifications, err := h.Service.ListOwn(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.Service.MarkRead(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.Service.MarkAllRead(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// Stream upgrades to a websocket that receives the caller's notifications as
// they are created.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	h.Hub.Serve(w, r, userID)
}
