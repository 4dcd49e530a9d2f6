package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errors.New("room not found")

// Repository contains all DB interactions needed by the service.
type Repository interface {
	List(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Create(ctx context.Context, r Room) (*Room, error)
	Update(ctx context.Context, r Room) (*Room, error)
}
