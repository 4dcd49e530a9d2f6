package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// Repository contains all DB interactions needed by the service.
// Doctors are never deleted, only set Inactive.
type Repository interface {
	List(ctx context.Context) ([]Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Create(ctx context.Context, d Doctor) (*Doctor, error)
	Update(ctx context.Context, d Doctor) (*Doctor, error)
}
