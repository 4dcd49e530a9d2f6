package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrAlreadyDischarged = errors.New("patient is already discharged")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	List(ctx context.Context) ([]Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	Create(ctx context.Context, p Patient) (*Patient, error)
	Update(ctx context.Context, p Patient) (*Patient, error)

	// Discharge is a compare-and-set: it only fires while the patient is not
	// already discharged, so a second call can never overwrite the stored
	// discharge date.
	Discharge(ctx context.Context, id uuid.UUID, at time.Time) (*Patient, error)
}
