package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pg-backend/internal/cache"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	Service *services.RoomService
}

func NewRoomHandler(service *services.RoomService) *RoomHandler {
	return &RoomHandler{Service: service}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.Service.CreateRoom(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateRoomCaches(r.Context())
	utils.JSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.RoomsListKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	rooms, err := h.Service.ListRooms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if data, err := json.Marshal(rooms); err == nil {
		cache.SetCached(r.Context(), cache.RoomsListKey, data, 5*time.Minute)
	}
	utils.JSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.Service.GetRoom(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req models.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.Service.UpdateRoom(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateRoomCaches(r.Context())
	utils.JSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	if err := h.Service.DeleteRoom(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateRoomCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Room deleted"})
}

// Reconcile recomputes occupancy counters from live tenant assignments and
// reports the corrections.
func (h *RoomHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	fixes, err := h.Service.ReconcileOccupancy(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	cache.InvalidateRoomCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"fixed": len(fixes),
		"rooms": fixes,
	})
}
