package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/printout"
	"github.com/medware/hospital-admin/internal/record"
)

type RecordPayload struct {
	PatientID      string              `json:"patient_id"`
	DoctorID       string              `json:"doctor_id"`
	VisitType      string              `json:"visit_type"`
	ChiefComplaint string              `json:"chief_complaint"`
	Diagnosis      string              `json:"diagnosis"`
	Vitals         record.Vitals       `json:"vitals"`
	Medications    []record.Medication `json:"medications"`
	LabResults     []record.LabResult  `json:"lab_results"`
	Notes          *string             `json:"notes,omitempty"`
}

func (p RecordPayload) toInput() (record.RecordInput, error) {
	patientID, err := uuid.Parse(p.PatientID)
	if err != nil {
		return record.RecordInput{}, errors.New("patient_id must be a valid UUID")
	}
	doctorID, err := uuid.Parse(p.DoctorID)
	if err != nil {
		return record.RecordInput{}, errors.New("doctor_id must be a valid UUID")
	}

	return record.RecordInput{
		PatientID:      patientID,
		DoctorID:       doctorID,
		VisitType:      p.VisitType,
		ChiefComplaint: p.ChiefComplaint,
		Diagnosis:      p.Diagnosis,
		Vitals:         p.Vitals,
		Medications:    p.Medications,
		LabResults:     p.LabResults,
		Notes:          p.Notes,
	}, nil
}

type RecordResponse struct {
	ID                uuid.UUID           `json:"id"`
	PatientID         uuid.UUID           `json:"patient_id"`
	DoctorID          uuid.UUID           `json:"doctor_id"`
	VisitType         string              `json:"visit_type"`
	ChiefComplaint    string              `json:"chief_complaint"`
	Diagnosis         string              `json:"diagnosis"`
	Vitals            record.Vitals       `json:"vitals"`
	Medications       []record.Medication `json:"medications"`
	LabResults        []record.LabResult  `json:"lab_results"`
	Notes             *string             `json:"notes,omitempty"`
	FaceSheetSnapshot *PatientResponse    `json:"face_sheet_snapshot,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func toRecordResponse(rec record.MedicalRecord) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID,
		PatientID:      rec.PatientID,
		DoctorID:       rec.DoctorID,
		VisitType:      rec.VisitType,
		ChiefComplaint: rec.ChiefComplaint,
		Diagnosis:      rec.Diagnosis,
		Vitals:         rec.Vitals,
		Medications:    rec.Medications,
		LabResults:     rec.LabResults,
		Notes:          rec.Notes,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.FaceSheetSnapshot != nil {
		snapshot := toPatientResponse(*rec.FaceSheetSnapshot)
		resp.FaceSheetSnapshot = &snapshot
	}
	return resp
}

func listRecordsHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			records []record.MedicalRecord
			err     error
		)
		if raw := r.URL.Query().Get("patient_id"); raw != "" {
			id, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
				return
			}
			records, err = svc.ListRecordsByPatient(r.Context(), id)
		} else {
			records, err = svc.ListRecords(r.Context())
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]RecordResponse, 0, len(records))
		for _, rec := range records {
			resp = append(resp, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getRecordHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_id", "id must be a valid UUID")
			return
		}

		rec, err := svc.GetRecord(r.Context(), id)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(*rec))
	}
}

func createRecordHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload RecordPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		rec, err := svc.CreateRecord(r.Context(), in)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordResponse(*rec))
	}
}

func updateRecordHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_id", "id must be a valid UUID")
			return
		}

		var payload RecordPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		rec, err := svc.UpdateRecord(r.Context(), id, in)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(*rec))
	}
}

type FaceSheetPayload struct {
	PatientID            string  `json:"patient_id"`
	PatientName          string  `json:"patient_name"`
	Age                  int     `json:"age"`
	Gender               string  `json:"gender"`
	Address              *string `json:"address,omitempty"`
	Phone                string  `json:"phone"`
	EmergencyContact     *string `json:"emergency_contact,omitempty"`
	AdmissionDate        *string `json:"admission_date,omitempty"`
	Department           string  `json:"department"`
	AttendingDoctor      string  `json:"attending_doctor"`
	ProvisionalDiagnosis *string `json:"provisional_diagnosis,omitempty"`
	Payer                *string `json:"payer,omitempty"`
	PolicyNumber         *string `json:"policy_number,omitempty"`
}

func (p FaceSheetPayload) toInput() (record.FaceSheetInput, error) {
	patientID, err := uuid.Parse(p.PatientID)
	if err != nil {
		return record.FaceSheetInput{}, errors.New("patient_id must be a valid UUID")
	}
	admission, err := parseDatePtr(p.AdmissionDate)
	if err != nil {
		return record.FaceSheetInput{}, err
	}

	return record.FaceSheetInput{
		PatientID:            patientID,
		PatientName:          p.PatientName,
		Age:                  p.Age,
		Gender:               p.Gender,
		Address:              p.Address,
		Phone:                p.Phone,
		EmergencyContact:     p.EmergencyContact,
		AdmissionDate:        admission,
		Department:           p.Department,
		AttendingDoctor:      p.AttendingDoctor,
		ProvisionalDiagnosis: p.ProvisionalDiagnosis,
		Payer:                p.Payer,
		PolicyNumber:         p.PolicyNumber,
	}, nil
}

type FaceSheetResponse struct {
	ID                   uuid.UUID `json:"id"`
	PRN                  string    `json:"prn"`
	IPDNumber            string    `json:"ipd_number"`
	PatientID            uuid.UUID `json:"patient_id"`
	PatientName          string    `json:"patient_name"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	Address              *string   `json:"address,omitempty"`
	Phone                string    `json:"phone"`
	EmergencyContact     *string   `json:"emergency_contact,omitempty"`
	AdmissionDate        time.Time `json:"admission_date"`
	Department           string    `json:"department"`
	AttendingDoctor      string    `json:"attending_doctor"`
	ProvisionalDiagnosis *string   `json:"provisional_diagnosis,omitempty"`
	Payer                *string   `json:"payer,omitempty"`
	PolicyNumber         *string   `json:"policy_number,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toFaceSheetResponse(fs record.FaceSheet) FaceSheetResponse {
	return FaceSheetResponse{
		ID:                   fs.ID,
		PRN:                  fs.PRN,
		IPDNumber:            fs.IPDNumber,
		PatientID:            fs.PatientID,
		PatientName:          fs.PatientName,
		Age:                  fs.Age,
		Gender:               fs.Gender,
		Address:              fs.Address,
		Phone:                fs.Phone,
		EmergencyContact:     fs.EmergencyContact,
		AdmissionDate:        fs.AdmissionDate,
		Department:           fs.Department,
		AttendingDoctor:      fs.AttendingDoctor,
		ProvisionalDiagnosis: fs.ProvisionalDiagnosis,
		Payer:                fs.Payer,
		PolicyNumber:         fs.PolicyNumber,
		CreatedAt:            fs.CreatedAt,
		UpdatedAt:            fs.UpdatedAt,
	}
}

func listFaceSheetsHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheets, err := svc.ListFaceSheets(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]FaceSheetResponse, 0, len(sheets))
		for _, fs := range sheets {
			resp = append(resp, toFaceSheetResponse(fs))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getFaceSheetHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_face_sheet_id", "id must be a valid UUID")
			return
		}

		fs, err := svc.GetFaceSheet(r.Context(), id)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFaceSheetResponse(*fs))
	}
}

func createFaceSheetHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload FaceSheetPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		fs, err := svc.CreateFaceSheet(r.Context(), in)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toFaceSheetResponse(*fs))
	}
}

func updateFaceSheetHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_face_sheet_id", "id must be a valid UUID")
			return
		}

		var payload FaceSheetPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		fs, err := svc.UpdateFaceSheet(r.Context(), id, in)
		if err != nil {
			handleRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFaceSheetResponse(*fs))
	}
}

func deleteFaceSheetHandler(svc *record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_face_sheet_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteFaceSheet(r.Context(), id); err != nil {
			handleRecordError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func printFaceSheetHandler(svc *record.Service, hospitalName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_face_sheet_id", "id must be a valid UUID")
			return
		}

		fs, err := svc.GetFaceSheet(r.Context(), id)
		if err != nil {
			handleRecordError(w, err)
			return
		}

		doc, err := printout.RenderFaceSheet(hospitalName, *fs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}

func handleRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, record.ErrMissingField):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, record.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "medical_record_not_found", err.Error())
	case errors.Is(err, record.ErrFaceSheetNotFound):
		writeError(w, http.StatusNotFound, "face_sheet_not_found", err.Error())
	case errors.Is(err, patient.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
