package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/doctor"
)

type DoctorPayload struct {
	Name            string            `json:"name"`
	Specialization  string            `json:"specialization"`
	Department      string            `json:"department"`
	Phone           string            `json:"phone"`
	Email           *string           `json:"email,omitempty"`
	Qualification   *string           `json:"qualification,omitempty"`
	ConsultationFee float64           `json:"consultation_fee"`
	Capacity        int               `json:"capacity"`
	Status          string            `json:"status,omitempty"`
	Schedule        map[string]string `json:"schedule,omitempty"`
}

func (p DoctorPayload) toInput() doctor.Input {
	return doctor.Input{
		Name:            p.Name,
		Specialization:  p.Specialization,
		Department:      p.Department,
		Phone:           p.Phone,
		Email:           p.Email,
		Qualification:   p.Qualification,
		ConsultationFee: p.ConsultationFee,
		Capacity:        p.Capacity,
		Status:          doctor.Status(p.Status),
		Schedule:        doctor.Schedule(p.Schedule),
	}
}

type DoctorResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Specialization  string            `json:"specialization"`
	Department      string            `json:"department"`
	Phone           string            `json:"phone"`
	Email           *string           `json:"email,omitempty"`
	Qualification   *string           `json:"qualification,omitempty"`
	ConsultationFee float64           `json:"consultation_fee"`
	Capacity        int               `json:"capacity"`
	Status          string            `json:"status"`
	Schedule        map[string]string `json:"schedule,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func toDoctorResponse(d doctor.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		Department:      d.Department,
		Phone:           d.Phone,
		Email:           d.Email,
		Qualification:   d.Qualification,
		ConsultationFee: d.ConsultationFee,
		Capacity:        d.Capacity,
		Status:          string(d.Status),
		Schedule:        d.Schedule,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func listDoctorsHandler(svc *doctor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := doctor.Filter{
			Search:     r.URL.Query().Get("search"),
			Department: r.URL.Query().Get("department"),
			Status:     doctor.Status(r.URL.Query().Get("status")),
		}

		doctors, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]DoctorResponse, 0, len(doctors))
		for _, d := range doctors {
			resp = append(resp, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getDoctorHandler(svc *doctor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		d, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDoctorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(*d))
	}
}

func createDoctorHandler(svc *doctor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload DoctorPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		d, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			handleDoctorError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDoctorResponse(*d))
	}
}

func updateDoctorHandler(svc *doctor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		var payload DoctorPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		d, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			handleDoctorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(*d))
	}
}

func handleDoctorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, doctor.ErrMissingField),
		errors.Is(err, doctor.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, doctor.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
