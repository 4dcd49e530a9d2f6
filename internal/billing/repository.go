package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrAlreadySettled  = errors.New("invoice is already paid or cancelled")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Create(ctx context.Context, inv Invoice) (*Invoice, error)
	Update(ctx context.Context, inv Invoice) (*Invoice, error)

	// MarkPaid only fires while the invoice is Pending or Overdue.
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (*Invoice, error)
}
