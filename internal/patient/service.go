package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
)

const cacheTable = "patients"

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidStatus = errors.New("invalid patient status")
)

// BedAllocator is implemented by the room service. The patient service only
// needs assign and release around admission and discharge.
type BedAllocator interface {
	AssignBed(ctx context.Context, roomID, patientID uuid.UUID) error
	ReleaseBed(ctx context.Context, roomID, patientID uuid.UUID) error
}

type Service struct {
	repo  Repository
	beds  BedAllocator
	lists *cache.ListStore
	log   zerolog.Logger
}

func NewService(repo Repository, beds BedAllocator, lists *cache.ListStore, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		beds:  beds,
		lists: lists,
		log:   log.With().Str("component", "patient").Logger(),
	}
}

// AdmitInput is the admission form payload. Name, gender and phone are the
// required fields; everything else is optional.
type AdmitInput struct {
	Name             string
	Gender           string
	Phone            string
	DateOfBirth      *time.Time
	Email            *string
	Address          *string
	BloodGroup       *string
	EmergencyContact *string
	Status           Status
	AdmissionDate    *time.Time
	AssignedDoctorID *uuid.UUID
	AssignedRoomID   *uuid.UUID
	Allergies        []string
	MedicalHistory   *string
}

func (in AdmitInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.Gender == "" {
		return fmt.Errorf("%w: gender", ErrMissingField)
	}
	if in.Phone == "" {
		return fmt.Errorf("%w: phone", ErrMissingField)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Patient, error) {
	patients, err := cache.Through(ctx, s.lists, cacheTable, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return ApplyFilter(patients, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}
	return p, nil
}

// Admit creates a patient from the admission form. When a room is requested
// the bed is taken first, so a full room rejects the admission before any
// patient row exists.
func (s *Service) Admit(ctx context.Context, in AdmitInput) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	status := in.Status
	if status == "" {
		status = StatusAdmitted
	}

	admission := in.AdmissionDate
	if admission == nil {
		admission = &now
	}

	p := Patient{
		ID:               uuid.New(),
		Name:             in.Name,
		Gender:           in.Gender,
		Phone:            in.Phone,
		DateOfBirth:      in.DateOfBirth,
		Email:            in.Email,
		Address:          in.Address,
		BloodGroup:       in.BloodGroup,
		EmergencyContact: in.EmergencyContact,
		Status:           status,
		AdmissionDate:    admission,
		AssignedDoctorID: in.AssignedDoctorID,
		AssignedRoomID:   in.AssignedRoomID,
		Allergies:        in.Allergies,
		MedicalHistory:   in.MedicalHistory,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if in.AssignedRoomID != nil {
		if err := s.beds.AssignBed(ctx, *in.AssignedRoomID, p.ID); err != nil {
			return nil, fmt.Errorf("assign bed: %w", err)
		}
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if in.AssignedRoomID != nil {
			if relErr := s.beds.ReleaseBed(ctx, *in.AssignedRoomID, p.ID); relErr != nil {
				s.log.Error().Err(relErr).Stringer("room_id", *in.AssignedRoomID).Msg("release bed after failed admit")
			}
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("patient_id", created.ID).Str("status", string(created.Status)).Msg("patient admitted")

	return created, nil
}

func sameRoom(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Update rewrites the editable fields of a patient. The discharge date is
// never touched here; only Discharge sets it. A room change goes through the
// bed allocator: the new bed is taken before the old one is freed, so a full
// target room rejects the move and the patient keeps their current bed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in AdmitInput) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevRoom := existing.AssignedRoomID
	moved := !sameRoom(prevRoom, in.AssignedRoomID)
	if moved && in.AssignedRoomID != nil {
		if err := s.beds.AssignBed(ctx, *in.AssignedRoomID, id); err != nil {
			return nil, fmt.Errorf("assign bed: %w", err)
		}
	}

	existing.Name = in.Name
	existing.Gender = in.Gender
	existing.Phone = in.Phone
	existing.DateOfBirth = in.DateOfBirth
	existing.Email = in.Email
	existing.Address = in.Address
	existing.BloodGroup = in.BloodGroup
	existing.EmergencyContact = in.EmergencyContact
	if in.Status != "" {
		existing.Status = in.Status
	}
	if in.AdmissionDate != nil {
		existing.AdmissionDate = in.AdmissionDate
	}
	existing.AssignedDoctorID = in.AssignedDoctorID
	existing.AssignedRoomID = in.AssignedRoomID
	existing.Allergies = in.Allergies
	existing.MedicalHistory = in.MedicalHistory
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		if moved && in.AssignedRoomID != nil {
			if relErr := s.beds.ReleaseBed(ctx, *in.AssignedRoomID, id); relErr != nil {
				s.log.Error().Err(relErr).Stringer("room_id", *in.AssignedRoomID).Msg("release bed after failed update")
			}
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}

	if moved && prevRoom != nil {
		if relErr := s.beds.ReleaseBed(ctx, *prevRoom, id); relErr != nil {
			s.log.Error().Err(relErr).Stringer("room_id", *prevRoom).Msg("release previous bed on room change")
		}
	}

	s.lists.Invalidate(ctx, cacheTable)

	return updated, nil
}

// Discharge marks the patient discharged as of now and frees their bed.
// Discharging twice fails with ErrAlreadyDischarged; the first discharge
// date is never overwritten.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) (*Patient, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusDischarged {
		return nil, ErrAlreadyDischarged
	}

	discharged, err := s.repo.Discharge(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if current.AssignedRoomID != nil {
		if relErr := s.beds.ReleaseBed(ctx, *current.AssignedRoomID, id); relErr != nil {
			// The patient is discharged either way; the bed count catches up
			// on the next manual room edit.
			s.log.Error().Err(relErr).Stringer("room_id", *current.AssignedRoomID).Msg("release bed on discharge")
		}
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("patient_id", id).Msg("patient discharged")

	return discharged, nil
}
