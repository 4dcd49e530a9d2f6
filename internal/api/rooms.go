package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/room"
)

type RoomPayload struct {
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Floor     int      `json:"floor"`
	Capacity  int      `json:"capacity"`
	Status    string   `json:"status,omitempty"`
	DailyRate float64  `json:"daily_rate"`
	Amenities []string `json:"amenities,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

func (p RoomPayload) toInput() room.Input {
	return room.Input{
		Number:    p.Number,
		Type:      p.Type,
		Floor:     p.Floor,
		Capacity:  p.Capacity,
		Status:    room.Status(p.Status),
		DailyRate: p.DailyRate,
		Amenities: p.Amenities,
		Equipment: p.Equipment,
	}
}

type RoomResponse struct {
	ID               uuid.UUID   `json:"id"`
	Number           string      `json:"number"`
	Type             string      `json:"type"`
	Floor            int         `json:"floor"`
	Capacity         int         `json:"capacity"`
	CurrentOccupancy int         `json:"current_occupancy"`
	Status           string      `json:"status"`
	DailyRate        float64     `json:"daily_rate"`
	Amenities        []string    `json:"amenities,omitempty"`
	Equipment        []string    `json:"equipment,omitempty"`
	AssignedPatients []uuid.UUID `json:"assigned_patients,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func toRoomResponse(rm room.Room) RoomResponse {
	return RoomResponse{
		ID:               rm.ID,
		Number:           rm.Number,
		Type:             rm.Type,
		Floor:            rm.Floor,
		Capacity:         rm.Capacity,
		CurrentOccupancy: rm.CurrentOccupancy,
		Status:           string(rm.Status),
		DailyRate:        rm.DailyRate,
		Amenities:        rm.Amenities,
		Equipment:        rm.Equipment,
		AssignedPatients: rm.AssignedPatients,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func listRoomsHandler(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := room.Filter{
			Search: r.URL.Query().Get("search"),
			Type:   r.URL.Query().Get("type"),
			Status: room.Status(r.URL.Query().Get("status")),
		}

		rooms, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]RoomResponse, 0, len(rooms))
		for _, rm := range rooms {
			resp = append(resp, toRoomResponse(rm))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getRoomHandler(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_room_id", "id must be a valid UUID")
			return
		}

		rm, err := svc.Get(r.Context(), id)
		if err != nil {
			handleRoomError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(*rm))
	}
}

func createRoomHandler(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload RoomPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rm, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			handleRoomError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRoomResponse(*rm))
	}
}

func updateRoomHandler(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_room_id", "id must be a valid UUID")
			return
		}

		var payload RoomPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rm, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			handleRoomError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRoomResponse(*rm))
	}
}

func handleRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrMissingField),
		errors.Is(err, room.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, room.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room_not_found", err.Error())
	case errors.Is(err, room.ErrRoomFull):
		writeError(w, http.StatusConflict, "room_full", err.Error())
	case errors.Is(err, room.ErrRoomUnavailable):
		writeError(w, http.StatusConflict, "room_unavailable", err.Error())
	case errors.Is(err, room.ErrRoomBusy):
		writeError(w, http.StatusConflict, "room_busy", "room is being updated, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
