package record

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound    = errors.New("medical record not found")
	ErrFaceSheetNotFound = errors.New("face sheet not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	ListRecords(ctx context.Context) ([]MedicalRecord, error)
	ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]MedicalRecord, error)
	GetRecordByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	CreateRecord(ctx context.Context, rec MedicalRecord) (*MedicalRecord, error)
	UpdateRecord(ctx context.Context, rec MedicalRecord) (*MedicalRecord, error)

	ListFaceSheets(ctx context.Context) ([]FaceSheet, error)
	GetFaceSheetByID(ctx context.Context, id uuid.UUID) (*FaceSheet, error)
	CreateFaceSheet(ctx context.Context, fs FaceSheet) (*FaceSheet, error)
	UpdateFaceSheet(ctx context.Context, fs FaceSheet) (*FaceSheet, error)
	DeleteFaceSheet(ctx context.Context, id uuid.UUID) error
}
