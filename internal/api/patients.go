package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/room"
)

type PatientPayload struct {
	Name             string   `json:"name"`
	Gender           string   `json:"gender"`
	Phone            string   `json:"phone"`
	DateOfBirth      *string  `json:"date_of_birth,omitempty"`
	Email            *string  `json:"email,omitempty"`
	Address          *string  `json:"address,omitempty"`
	BloodGroup       *string  `json:"blood_group,omitempty"`
	EmergencyContact *string  `json:"emergency_contact,omitempty"`
	Status           string   `json:"status,omitempty"`
	AdmissionDate    *string  `json:"admission_date,omitempty"`
	AssignedDoctorID *string  `json:"assigned_doctor_id,omitempty"`
	AssignedRoomID   *string  `json:"assigned_room_id,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	MedicalHistory   *string  `json:"medical_history,omitempty"`
}

func (p PatientPayload) toInput() (patient.AdmitInput, error) {
	dob, err := parseDatePtr(p.DateOfBirth)
	if err != nil {
		return patient.AdmitInput{}, err
	}
	admission, err := parseDatePtr(p.AdmissionDate)
	if err != nil {
		return patient.AdmitInput{}, err
	}
	doctorID, err := parseUUIDPtr(p.AssignedDoctorID)
	if err != nil {
		return patient.AdmitInput{}, err
	}
	roomID, err := parseUUIDPtr(p.AssignedRoomID)
	if err != nil {
		return patient.AdmitInput{}, err
	}

	return patient.AdmitInput{
		Name:             p.Name,
		Gender:           p.Gender,
		Phone:            p.Phone,
		DateOfBirth:      dob,
		Email:            p.Email,
		Address:          p.Address,
		BloodGroup:       p.BloodGroup,
		EmergencyContact: p.EmergencyContact,
		Status:           patient.Status(p.Status),
		AdmissionDate:    admission,
		AssignedDoctorID: doctorID,
		AssignedRoomID:   roomID,
		Allergies:        p.Allergies,
		MedicalHistory:   p.MedicalHistory,
	}, nil
}

type PatientResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Gender           string     `json:"gender"`
	Phone            string     `json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Address          *string    `json:"address,omitempty"`
	BloodGroup       *string    `json:"blood_group,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
	Status           string     `json:"status"`
	AdmissionDate    *time.Time `json:"admission_date,omitempty"`
	DischargeDate    *time.Time `json:"discharge_date,omitempty"`
	AssignedDoctorID *uuid.UUID `json:"assigned_doctor_id,omitempty"`
	AssignedRoomID   *uuid.UUID `json:"assigned_room_id,omitempty"`
	Allergies        []string   `json:"allergies,omitempty"`
	MedicalHistory   *string    `json:"medical_history,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toPatientResponse(p patient.Patient) PatientResponse {
	return PatientResponse{
		ID:               p.ID,
		Name:             p.Name,
		Gender:           p.Gender,
		Phone:            p.Phone,
		DateOfBirth:      p.DateOfBirth,
		Email:            p.Email,
		Address:          p.Address,
		BloodGroup:       p.BloodGroup,
		EmergencyContact: p.EmergencyContact,
		Status:           string(p.Status),
		AdmissionDate:    p.AdmissionDate,
		DischargeDate:    p.DischargeDate,
		AssignedDoctorID: p.AssignedDoctorID,
		AssignedRoomID:   p.AssignedRoomID,
		Allergies:        p.Allergies,
		MedicalHistory:   p.MedicalHistory,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func listPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := patient.Filter{
			Search: r.URL.Query().Get("search"),
			Status: patient.Status(r.URL.Query().Get("status")),
		}

		patients, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]PatientResponse, 0, len(patients))
		for _, p := range patients {
			resp = append(resp, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(*p))
	}
}

func admitPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload PatientPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		p, err := svc.Admit(r.Context(), in)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPatientResponse(*p))
	}
}

func updatePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var payload PatientPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		p, err := svc.Update(r.Context(), id, in)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(*p))
	}
}

func dischargePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Discharge(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(*p))
	}
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, patient.ErrMissingField),
		errors.Is(err, patient.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, patient.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, patient.ErrAlreadyDischarged):
		writeError(w, http.StatusConflict, "already_discharged", err.Error())
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
