package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
	"github.com/medware/hospital-admin/internal/docnum"
	"github.com/medware/hospital-admin/internal/doctor"
	"github.com/medware/hospital-admin/internal/patient"
)

const (
	recordsCacheTable    = "medical_records"
	faceSheetsCacheTable = "face_sheets"
)

var ErrMissingField = errors.New("missing required field")

// PatientSource resolves patients for the point-in-time face sheet snapshot.
type PatientSource interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// DoctorSource resolves the doctor behind a visit record.
type DoctorSource interface {
	Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}

type Service struct {
	repo     Repository
	patients PatientSource
	doctors  DoctorSource
	lists    *cache.ListStore
	log      zerolog.Logger
}

func NewService(repo Repository, patients PatientSource, doctors DoctorSource, lists *cache.ListStore, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		lists:    lists,
		log:      log.With().Str("component", "record").Logger(),
	}
}

type RecordInput struct {
	PatientID      uuid.UUID
	DoctorID       uuid.UUID
	VisitType      string
	ChiefComplaint string
	Diagnosis      string
	Vitals         Vitals
	Medications    []Medication
	LabResults     []LabResult
	Notes          *string
}

func (in RecordInput) validate() error {
	if in.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id", ErrMissingField)
	}
	if in.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: doctor_id", ErrMissingField)
	}
	if in.ChiefComplaint == "" {
		return fmt.Errorf("%w: chief_complaint", ErrMissingField)
	}
	return nil
}

func (s *Service) ListRecords(ctx context.Context) ([]MedicalRecord, error) {
	records, err := cache.Through(ctx, s.lists, recordsCacheTable, s.repo.ListRecords)
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}
	return records, nil
}

func (s *Service) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]MedicalRecord, error) {
	records, err := s.repo.ListRecordsByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list medical records by patient: %w", err)
	}
	return records, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	rec, err := s.repo.GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load medical record: %w", err)
	}
	return rec, nil
}

// CreateRecord writes a visit record. The patient row is copied into the
// record as the face sheet snapshot exactly as it stands right now; later
// patient edits leave the snapshot alone.
func (s *Service) CreateRecord(ctx context.Context, in RecordInput) (*MedicalRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.patients.Get(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.doctors.Get(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := *p

	created, err := s.repo.CreateRecord(ctx, MedicalRecord{
		ID:                uuid.New(),
		PatientID:         in.PatientID,
		DoctorID:          in.DoctorID,
		VisitType:         in.VisitType,
		ChiefComplaint:    in.ChiefComplaint,
		Diagnosis:         in.Diagnosis,
		Vitals:            in.Vitals,
		Medications:       in.Medications,
		LabResults:        in.LabResults,
		Notes:             in.Notes,
		FaceSheetSnapshot: &snapshot,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, fmt.Errorf("create medical record: %w", err)
	}

	s.lists.Invalidate(ctx, recordsCacheTable)
	s.log.Info().Stringer("record_id", created.ID).Stringer("patient_id", in.PatientID).Msg("medical record created")

	return created, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, in RecordInput) (*MedicalRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.VisitType = in.VisitType
	existing.ChiefComplaint = in.ChiefComplaint
	existing.Diagnosis = in.Diagnosis
	existing.Vitals = in.Vitals
	existing.Medications = in.Medications
	existing.LabResults = in.LabResults
	existing.Notes = in.Notes
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.UpdateRecord(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update medical record: %w", err)
	}

	s.lists.Invalidate(ctx, recordsCacheTable)

	return updated, nil
}

type FaceSheetInput struct {
	PatientID            uuid.UUID
	PatientName          string
	Age                  int
	Gender               string
	Address              *string
	Phone                string
	EmergencyContact     *string
	AdmissionDate        *time.Time
	Department           string
	AttendingDoctor      string
	ProvisionalDiagnosis *string
	Payer                *string
	PolicyNumber         *string
}

func (in FaceSheetInput) validate() error {
	if in.PatientName == "" {
		return fmt.Errorf("%w: patient_name", ErrMissingField)
	}
	if in.Gender == "" {
		return fmt.Errorf("%w: gender", ErrMissingField)
	}
	if in.Phone == "" {
		return fmt.Errorf("%w: phone", ErrMissingField)
	}
	if in.Department == "" {
		return fmt.Errorf("%w: department", ErrMissingField)
	}
	if in.AttendingDoctor == "" {
		return fmt.Errorf("%w: attending_doctor", ErrMissingField)
	}
	return nil
}

func (s *Service) ListFaceSheets(ctx context.Context) ([]FaceSheet, error) {
	sheets, err := cache.Through(ctx, s.lists, faceSheetsCacheTable, s.repo.ListFaceSheets)
	if err != nil {
		return nil, fmt.Errorf("list face sheets: %w", err)
	}
	return sheets, nil
}

func (s *Service) GetFaceSheet(ctx context.Context, id uuid.UUID) (*FaceSheet, error) {
	fs, err := s.repo.GetFaceSheetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFaceSheetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load face sheet: %w", err)
	}
	return fs, nil
}

func (s *Service) CreateFaceSheet(ctx context.Context, in FaceSheetInput) (*FaceSheet, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	admission := now
	if in.AdmissionDate != nil {
		admission = *in.AdmissionDate
	}

	created, err := s.repo.CreateFaceSheet(ctx, FaceSheet{
		ID:                   uuid.New(),
		PRN:                  docnum.Generate(docnum.PrefixPRN, admission),
		IPDNumber:            docnum.Generate(docnum.PrefixIPD, admission),
		PatientID:            in.PatientID,
		PatientName:          in.PatientName,
		Age:                  in.Age,
		Gender:               in.Gender,
		Address:              in.Address,
		Phone:                in.Phone,
		EmergencyContact:     in.EmergencyContact,
		AdmissionDate:        admission,
		Department:           in.Department,
		AttendingDoctor:      in.AttendingDoctor,
		ProvisionalDiagnosis: in.ProvisionalDiagnosis,
		Payer:                in.Payer,
		PolicyNumber:         in.PolicyNumber,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		return nil, fmt.Errorf("create face sheet: %w", err)
	}

	s.lists.Invalidate(ctx, faceSheetsCacheTable)
	s.log.Info().Stringer("face_sheet_id", created.ID).Str("ipd", created.IPDNumber).Msg("face sheet created")

	return created, nil
}

func (s *Service) UpdateFaceSheet(ctx context.Context, id uuid.UUID, in FaceSheetInput) (*FaceSheet, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetFaceSheetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.PatientName = in.PatientName
	existing.Age = in.Age
	existing.Gender = in.Gender
	existing.Address = in.Address
	existing.Phone = in.Phone
	existing.EmergencyContact = in.EmergencyContact
	if in.AdmissionDate != nil {
		existing.AdmissionDate = *in.AdmissionDate
	}
	existing.Department = in.Department
	existing.AttendingDoctor = in.AttendingDoctor
	existing.ProvisionalDiagnosis = in.ProvisionalDiagnosis
	existing.Payer = in.Payer
	existing.PolicyNumber = in.PolicyNumber
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.UpdateFaceSheet(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update face sheet: %w", err)
	}

	s.lists.Invalidate(ctx, faceSheetsCacheTable)

	return updated, nil
}

// DeleteFaceSheet removes the sheet and only reports success after the store
// confirms; the cache is invalidated afterwards, so a failed delete leaves
// both store and cache untouched.
func (s *Service) DeleteFaceSheet(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFaceSheet(ctx, id); err != nil {
		return err
	}

	s.lists.Invalidate(ctx, faceSheetsCacheTable)
	s.log.Info().Stringer("face_sheet_id", id).Msg("face sheet deleted")

	return nil
}
