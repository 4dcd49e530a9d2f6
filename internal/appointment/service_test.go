package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/doctor"
	"github.com/medware/hospital-admin/internal/patient"
)

type fakeRepo struct {
	byID    map[uuid.UUID]*Appointment
	created *Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*Appointment)}
}

func (r *fakeRepo) List(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) Create(ctx context.Context, a Appointment) (*Appointment, error) {
	cp := a
	r.byID[a.ID] = &cp
	r.created = &cp
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	a, ok := r.byID[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	a.Status = to
	cp := *a
	return &cp, nil
}

type fakePatients struct {
	patients map[uuid.UUID]*patient.Patient
}

func (f *fakePatients) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

type fakeDoctors struct {
	doctors map[uuid.UUID]*doctor.Doctor
}

func (f *fakeDoctors) Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func newTestService(repo *fakeRepo, p *patient.Patient, d *doctor.Doctor) (*Service, uuid.UUID, uuid.UUID) {
	patientID := uuid.New()
	doctorID := uuid.New()

	patients := &fakePatients{patients: map[uuid.UUID]*patient.Patient{}}
	if p != nil {
		patients.patients[patientID] = p
	}
	doctors := &fakeDoctors{doctors: map[uuid.UUID]*doctor.Doctor{}}
	if d != nil {
		doctors.doctors[doctorID] = d
	}

	svc := NewService(repo, patients, doctors, nil, zerolog.Nop())
	return svc, patientID, doctorID
}

func TestScheduleDerivesFee(t *testing.T) {
	repo := newFakeRepo()
	svc, patientID, doctorID := newTestService(repo,
		&patient.Patient{Name: "Alice"},
		&doctor.Doctor{Specialization: "Cardiology", ConsultationFee: 700, Status: doctor.StatusActive},
	)

	got, err := svc.Schedule(context.Background(), ScheduleInput{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	// The specialization table wins over the doctor's own fee.
	if got.Fee != 1500 {
		t.Errorf("Fee = %v, want 1500", got.Fee)
	}
	if got.Status != StatusScheduled {
		t.Errorf("Status = %q, want Scheduled", got.Status)
	}
	if got.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %d, want default 30", got.DurationMinutes)
	}
}

func TestScheduleRejectsInactiveDoctor(t *testing.T) {
	repo := newFakeRepo()
	svc, patientID, doctorID := newTestService(repo,
		&patient.Patient{Name: "Alice"},
		&doctor.Doctor{Specialization: "ENT", Status: doctor.StatusOnLeave},
	)

	_, err := svc.Schedule(context.Background(), ScheduleInput{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	if !errors.Is(err, ErrDoctorNotAvailable) {
		t.Errorf("Schedule with inactive doctor = %v, want ErrDoctorNotAvailable", err)
	}
	if repo.created != nil {
		t.Error("appointment was created despite the inactive doctor")
	}
}

func TestScheduleUnknownPatient(t *testing.T) {
	repo := newFakeRepo()
	svc, _, doctorID := newTestService(repo, nil,
		&doctor.Doctor{Specialization: "ENT", Status: doctor.StatusActive},
	)

	_, err := svc.Schedule(context.Background(), ScheduleInput{
		PatientID:   uuid.New(),
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Errorf("Schedule with unknown patient = %v, want ErrPatientNotFound", err)
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		to      Status
		wantErr error
		want    Status
	}{
		{"scheduled to completed", StatusScheduled, StatusCompleted, nil, StatusCompleted},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, nil, StatusCancelled},
		{"scheduled to no show", StatusScheduled, StatusNoShow, nil, StatusNoShow},
		{"back to scheduled is refused", StatusScheduled, StatusScheduled, ErrInvalidStatusTransition, ""},
		{"completed is terminal", StatusCompleted, StatusCancelled, ErrInvalidStatusTransition, ""},
		{"cancelled is terminal", StatusCancelled, StatusCompleted, ErrInvalidStatusTransition, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			id := uuid.New()
			repo.byID[id] = &Appointment{ID: id, Status: tt.current}

			svc := NewService(repo, &fakePatients{}, &fakeDoctors{}, nil, zerolog.Nop())

			got, err := svc.Transition(context.Background(), id, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Transition = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition: %v", err)
			}
			if got.Status != tt.want {
				t.Errorf("Status = %q, want %q", got.Status, tt.want)
			}
		})
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakePatients{}, &fakeDoctors{}, nil, zerolog.Nop())

	_, err := svc.Transition(context.Background(), uuid.New(), StatusCompleted)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("Transition on missing appointment = %v, want ErrAppointmentNotFound", err)
	}
}
