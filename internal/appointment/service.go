package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
	"github.com/medware/hospital-admin/internal/doctor"
	"github.com/medware/hospital-admin/internal/patient"
)

const cacheTable = "appointments"

var (
	ErrMissingField            = errors.New("missing required field")
	ErrDoctorNotAvailable      = errors.New("doctor is not active")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// PatientSource and DoctorSource keep the booking checks on live data
// without importing the other services directly.
type PatientSource interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

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
		log:      log.With().Str("component", "appointment").Logger(),
	}
}

type ScheduleInput struct {
	PatientID       uuid.UUID
	DoctorID        uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Reason          string
}

func (in ScheduleInput) validate() error {
	if in.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id", ErrMissingField)
	}
	if in.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: doctor_id", ErrMissingField)
	}
	if in.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled_at", ErrMissingField)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	appointments, err := cache.Through(ctx, s.lists, cacheTable, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	appointments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	return a, nil
}

// Schedule books a visit. The fee is derived once here from the doctor's
// specialization.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*Appointment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := s.patients.Get(ctx, in.PatientID); err != nil {
		return nil, err
	}

	d, err := s.doctors.Get(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if d.Status != doctor.StatusActive {
		return nil, ErrDoctorNotAvailable
	}

	now := time.Now().UTC()

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	created, err := s.repo.Create(ctx, Appointment{
		ID:              uuid.New(),
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: duration,
		Reason:          in.Reason,
		Status:          StatusScheduled,
		Fee:             doctor.FeeForSpecialization(d.Specialization, d.ConsultationFee),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("appointment_id", created.ID).Float64("fee", created.Fee).Msg("appointment scheduled")

	return created, nil
}

// Transition moves a scheduled appointment to one of the terminal states.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	if !to.Valid() || to == StatusScheduled {
		return nil, ErrInvalidStatusTransition
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, StatusScheduled, to)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// The guard lost a race; the stored status moved underneath us.
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("appointment_id", id).Str("status", string(to)).Msg("appointment status changed")

	return updated, nil
}
