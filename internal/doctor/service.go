package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
)

const cacheTable = "doctors"

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidStatus = errors.New("invalid doctor status")
)

type Service struct {
	repo  Repository
	lists *cache.ListStore
	log   zerolog.Logger
}

func NewService(repo Repository, lists *cache.ListStore, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		lists: lists,
		log:   log.With().Str("component", "doctor").Logger(),
	}
}

// Input is the roster form payload for both create and update.
type Input struct {
	Name            string
	Specialization  string
	Department      string
	Phone           string
	Email           *string
	Qualification   *string
	ConsultationFee float64
	Capacity        int
	Status          Status
	Schedule        Schedule
}

func (in Input) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.Specialization == "" {
		return fmt.Errorf("%w: specialization", ErrMissingField)
	}
	if in.Department == "" {
		return fmt.Errorf("%w: department", ErrMissingField)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Doctor, error) {
	doctors, err := cache.Through(ctx, s.lists, cacheTable, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return ApplyFilter(doctors, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Doctor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	created, err := s.repo.Create(ctx, Doctor{
		ID:              uuid.New(),
		Name:            in.Name,
		Specialization:  in.Specialization,
		Department:      in.Department,
		Phone:           in.Phone,
		Email:           in.Email,
		Qualification:   in.Qualification,
		ConsultationFee: in.ConsultationFee,
		Capacity:        in.Capacity,
		Status:          status,
		Schedule:        in.Schedule,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("doctor_id", created.ID).Str("specialization", created.Specialization).Msg("doctor added to roster")

	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Doctor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Specialization = in.Specialization
	existing.Department = in.Department
	existing.Phone = in.Phone
	existing.Email = in.Email
	existing.Qualification = in.Qualification
	existing.ConsultationFee = in.ConsultationFee
	existing.Capacity = in.Capacity
	if in.Status != "" {
		existing.Status = in.Status
	}
	if in.Schedule != nil {
		existing.Schedule = in.Schedule
	}
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)

	return updated, nil
}
