package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
)

const cacheTable = "rooms"

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidStatus   = errors.New("invalid room status")
	ErrRoomFull        = errors.New("room has no free beds")
	ErrRoomUnavailable = errors.New("room is not accepting patients")
	ErrRoomBusy        = errors.New("room is being updated, please retry")
)

type Service struct {
	repo   Repository
	locker cache.Locker
	lists  *cache.ListStore
	log    zerolog.Logger
}

func NewService(repo Repository, locker cache.Locker, lists *cache.ListStore, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		lists:  lists,
		log:    log.With().Str("component", "room").Logger(),
	}
}

type Input struct {
	Number    string
	Type      string
	Floor     int
	Capacity  int
	Status    Status
	DailyRate float64
	Amenities []string
	Equipment []string
}

func (in Input) validate() error {
	if in.Number == "" {
		return fmt.Errorf("%w: number", ErrMissingField)
	}
	if in.Type == "" {
		return fmt.Errorf("%w: type", ErrMissingField)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("%w: capacity", ErrMissingField)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Room, error) {
	rooms, err := cache.Through(ctx, s.lists, cacheTable, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return ApplyFilter(rooms, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load room: %w", err)
	}
	return rm, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Room, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	status := in.Status
	if status == "" {
		status = StatusAvailable
	}

	created, err := s.repo.Create(ctx, Room{
		ID:               uuid.New(),
		Number:           in.Number,
		Type:             in.Type,
		Floor:            in.Floor,
		Capacity:         in.Capacity,
		CurrentOccupancy: 0,
		Status:           status,
		DailyRate:        in.DailyRate,
		Amenities:        in.Amenities,
		Equipment:        in.Equipment,
		AssignedPatients: []uuid.UUID{},
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("room_id", created.ID).Str("number", created.Number).Msg("room created")

	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Room, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Number = in.Number
	existing.Type = in.Type
	existing.Floor = in.Floor
	existing.Capacity = in.Capacity
	if in.Status != "" {
		existing.Status = in.Status
	}
	existing.DailyRate = in.DailyRate
	existing.Amenities = in.Amenities
	existing.Equipment = in.Equipment
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)

	return updated, nil
}

// AssignBed takes a bed for a patient under the per-room lock, so two
// concurrent admissions cannot both get the last bed.
func (s *Service) AssignBed(ctx context.Context, roomID, patientID uuid.UUID) error {
	err := s.locker.WithRoomLock(ctx, roomID, func(lockCtx context.Context) error {
		rm, err := s.repo.GetByID(lockCtx, roomID)
		if err != nil {
			return err
		}

		if err := takeBed(rm, patientID); err != nil {
			return err
		}
		rm.UpdatedAt = time.Now().UTC()

		if _, err := s.repo.Update(lockCtx, *rm); err != nil {
			return fmt.Errorf("save room occupancy: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, cache.ErrLockNotAcquired) {
			return ErrRoomBusy
		}
		return err
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("room_id", roomID).Stringer("patient_id", patientID).Msg("bed assigned")

	return nil
}

// ReleaseBed frees the patient's bed. Releasing a patient who is not in the
// room is a no-op, not an error; discharge must stay idempotent about beds.
func (s *Service) ReleaseBed(ctx context.Context, roomID, patientID uuid.UUID) error {
	err := s.locker.WithRoomLock(ctx, roomID, func(lockCtx context.Context) error {
		rm, err := s.repo.GetByID(lockCtx, roomID)
		if err != nil {
			return err
		}

		if !freeBed(rm, patientID) {
			return nil
		}
		rm.UpdatedAt = time.Now().UTC()

		if _, err := s.repo.Update(lockCtx, *rm); err != nil {
			return fmt.Errorf("save room occupancy: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, cache.ErrLockNotAcquired) {
			return ErrRoomBusy
		}
		return err
	}

	s.lists.Invalidate(ctx, cacheTable)

	return nil
}

// takeBed applies the occupancy change in memory. The room flips to Occupied
// once the last bed is taken.
func takeBed(rm *Room, patientID uuid.UUID) error {
	if rm.Status == StatusMaintenance || rm.Status == StatusReserved {
		return ErrRoomUnavailable
	}
	if rm.CurrentOccupancy >= rm.Capacity {
		return ErrRoomFull
	}

	rm.AssignedPatients = append(rm.AssignedPatients, patientID)
	rm.CurrentOccupancy++
	if rm.CurrentOccupancy >= rm.Capacity {
		rm.Status = StatusOccupied
	}
	return nil
}

// freeBed removes the patient and reports whether anything changed. A room
// in Maintenance keeps that status even when a bed frees up.
func freeBed(rm *Room, patientID uuid.UUID) bool {
	idx := -1
	for i, id := range rm.AssignedPatients {
		if id == patientID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	rm.AssignedPatients = append(rm.AssignedPatients[:idx], rm.AssignedPatients[idx+1:]...)
	if rm.CurrentOccupancy > 0 {
		rm.CurrentOccupancy--
	}
	if rm.Status == StatusOccupied && rm.CurrentOccupancy < rm.Capacity {
		rm.Status = StatusAvailable
	}
	return true
}
