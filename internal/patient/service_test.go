package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeRepo struct {
	byID      map[uuid.UUID]*Patient
	createErr error
}

func newFakePatientRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*Patient)}
}

func (r *fakeRepo) List(ctx context.Context) ([]Patient, error) {
	out := make([]Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Create(ctx context.Context, p Patient) (*Patient, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := p
	r.byID[p.ID] = &cp
	return &cp, nil
}

func (r *fakeRepo) Update(ctx context.Context, p Patient) (*Patient, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, ErrPatientNotFound
	}
	cp := p
	r.byID[p.ID] = &cp
	return &cp, nil
}

func (r *fakeRepo) Discharge(ctx context.Context, id uuid.UUID, at time.Time) (*Patient, error) {
	p, ok := r.byID[id]
	if !ok || p.Status == StatusDischarged {
		if ok {
			return nil, ErrAlreadyDischarged
		}
		return nil, ErrPatientNotFound
	}
	p.Status = StatusDischarged
	p.DischargeDate = &at
	p.AssignedRoomID = nil
	cp := *p
	return &cp, nil
}

type fakeBeds struct {
	assignErr error
	assigned  []uuid.UUID
	released  []uuid.UUID
}

func (b *fakeBeds) AssignBed(ctx context.Context, roomID, patientID uuid.UUID) error {
	if b.assignErr != nil {
		return b.assignErr
	}
	b.assigned = append(b.assigned, roomID)
	return nil
}

func (b *fakeBeds) ReleaseBed(ctx context.Context, roomID, patientID uuid.UUID) error {
	b.released = append(b.released, roomID)
	return nil
}

func validAdmitInput() AdmitInput {
	return AdmitInput{Name: "Alice Fernandes", Gender: "Female", Phone: "9876543210"}
}

func TestAdmitValidation(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeBeds{}, nil, zerolog.Nop())

	tests := []struct {
		name string
		mod  func(*AdmitInput)
		want error
	}{
		{"missing name", func(in *AdmitInput) { in.Name = "" }, ErrMissingField},
		{"missing gender", func(in *AdmitInput) { in.Gender = "" }, ErrMissingField},
		{"missing phone", func(in *AdmitInput) { in.Phone = "" }, ErrMissingField},
		{"bad status", func(in *AdmitInput) { in.Status = "Resting" }, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAdmitInput()
			tt.mod(&in)
			if _, err := svc.Admit(context.Background(), in); !errors.Is(err, tt.want) {
				t.Errorf("Admit = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdmitDefaults(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeBeds{}, nil, zerolog.Nop())

	got, err := svc.Admit(context.Background(), validAdmitInput())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if got.Status != StatusAdmitted {
		t.Errorf("default status = %q, want Admitted", got.Status)
	}
	if got.AdmissionDate == nil || got.AdmissionDate.IsZero() {
		t.Error("admission date was not defaulted")
	}
}

func TestAdmitTakesBedBeforeCreate(t *testing.T) {
	beds := &fakeBeds{assignErr: errors.New("room is full")}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	roomID := uuid.New()
	in := validAdmitInput()
	in.AssignedRoomID = &roomID

	if _, err := svc.Admit(context.Background(), in); err == nil {
		t.Fatal("Admit succeeded despite a full room")
	}
	if len(repo.byID) != 0 {
		t.Error("patient row was created even though the bed assignment failed")
	}
}

func TestAdmitReleasesBedWhenCreateFails(t *testing.T) {
	beds := &fakeBeds{}
	repo := newFakePatientRepo()
	repo.createErr = errors.New("insert failed")
	svc := NewService(repo, beds, nil, zerolog.Nop())

	roomID := uuid.New()
	in := validAdmitInput()
	in.AssignedRoomID = &roomID

	if _, err := svc.Admit(context.Background(), in); err == nil {
		t.Fatal("Admit succeeded despite the failing store")
	}
	if len(beds.assigned) != 1 || len(beds.released) != 1 {
		t.Errorf("assigned=%d released=%d, want the taken bed handed back", len(beds.assigned), len(beds.released))
	}
}

func TestDischarge(t *testing.T) {
	beds := &fakeBeds{}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	roomID := uuid.New()
	id := uuid.New()
	repo.byID[id] = &Patient{ID: id, Name: "Alice", Status: StatusAdmitted, AssignedRoomID: &roomID}

	got, err := svc.Discharge(context.Background(), id)
	if err != nil {
		t.Fatalf("Discharge: %v", err)
	}
	if got.Status != StatusDischarged {
		t.Errorf("status = %q, want Discharged", got.Status)
	}
	if got.DischargeDate == nil {
		t.Error("discharge date was not set")
	}
	if got.AssignedRoomID != nil {
		t.Error("room assignment survived the discharge")
	}
	if len(beds.released) != 1 {
		t.Errorf("released %d beds, want 1", len(beds.released))
	}

	// A second discharge must not move the date or release anything again.
	if _, err := svc.Discharge(context.Background(), id); !errors.Is(err, ErrAlreadyDischarged) {
		t.Errorf("second Discharge = %v, want ErrAlreadyDischarged", err)
	}
	if len(beds.released) != 1 {
		t.Errorf("released %d beds after double discharge, want still 1", len(beds.released))
	}
}

func TestDischargeUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeBeds{}, nil, zerolog.Nop())
	if _, err := svc.Discharge(context.Background(), uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Discharge = %v, want ErrPatientNotFound", err)
	}
}

func TestUpdatePreservesDischargeDate(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, &fakeBeds{}, nil, zerolog.Nop())

	dischargedAt := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	repo.byID[id] = &Patient{
		ID:            id,
		Name:          "Bob",
		Gender:        "Male",
		Phone:         "9123456780",
		Status:        StatusDischarged,
		DischargeDate: &dischargedAt,
	}

	in := validAdmitInput()
	in.Status = StatusDischarged
	got, err := svc.Update(context.Background(), id, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.DischargeDate == nil || !got.DischargeDate.Equal(dischargedAt) {
		t.Errorf("discharge date = %v, want untouched %v", got.DischargeDate, dischargedAt)
	}
	if got.Name != "Alice Fernandes" {
		t.Errorf("name = %q, want the updated name", got.Name)
	}
}

func TestUpdateMovesBed(t *testing.T) {
	beds := &fakeBeds{}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	oldRoom := uuid.New()
	newRoom := uuid.New()
	id := uuid.New()
	repo.byID[id] = &Patient{ID: id, Name: "Alice", Status: StatusAdmitted, AssignedRoomID: &oldRoom}

	in := validAdmitInput()
	in.AssignedRoomID = &newRoom
	got, err := svc.Update(context.Background(), id, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.AssignedRoomID == nil || *got.AssignedRoomID != newRoom {
		t.Errorf("assigned room = %v, want %v", got.AssignedRoomID, newRoom)
	}
	if len(beds.assigned) != 1 || beds.assigned[0] != newRoom {
		t.Errorf("assigned rooms = %v, want just the new room", beds.assigned)
	}
	if len(beds.released) != 1 || beds.released[0] != oldRoom {
		t.Errorf("released rooms = %v, want just the old room", beds.released)
	}
}

func TestUpdateKeepsBedWhenRoomUnchanged(t *testing.T) {
	beds := &fakeBeds{}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	roomID := uuid.New()
	id := uuid.New()
	repo.byID[id] = &Patient{ID: id, Name: "Alice", Status: StatusAdmitted, AssignedRoomID: &roomID}

	in := validAdmitInput()
	sameID := roomID
	in.AssignedRoomID = &sameID
	if _, err := svc.Update(context.Background(), id, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(beds.assigned) != 0 || len(beds.released) != 0 {
		t.Errorf("assigned=%v released=%v, want no bed movement for an unchanged room", beds.assigned, beds.released)
	}
}

func TestUpdateRejectsFullRoomKeepsOldBed(t *testing.T) {
	beds := &fakeBeds{assignErr: errors.New("room is full")}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	oldRoom := uuid.New()
	newRoom := uuid.New()
	id := uuid.New()
	repo.byID[id] = &Patient{ID: id, Name: "Alice", Status: StatusAdmitted, AssignedRoomID: &oldRoom}

	in := validAdmitInput()
	in.AssignedRoomID = &newRoom
	if _, err := svc.Update(context.Background(), id, in); err == nil {
		t.Fatal("Update succeeded despite a full target room")
	}
	if len(beds.released) != 0 {
		t.Errorf("released rooms = %v, want the old bed kept", beds.released)
	}
	stored, _ := repo.GetByID(context.Background(), id)
	if stored.AssignedRoomID == nil || *stored.AssignedRoomID != oldRoom {
		t.Errorf("stored room = %v, want unchanged %v", stored.AssignedRoomID, oldRoom)
	}
}

func TestUpdateClearsRoomReleasesBed(t *testing.T) {
	beds := &fakeBeds{}
	repo := newFakePatientRepo()
	svc := NewService(repo, beds, nil, zerolog.Nop())

	roomID := uuid.New()
	id := uuid.New()
	repo.byID[id] = &Patient{ID: id, Name: "Alice", Status: StatusAdmitted, AssignedRoomID: &roomID}

	got, err := svc.Update(context.Background(), id, validAdmitInput())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.AssignedRoomID != nil {
		t.Errorf("assigned room = %v, want cleared", got.AssignedRoomID)
	}
	if len(beds.assigned) != 0 {
		t.Errorf("assigned rooms = %v, want none", beds.assigned)
	}
	if len(beds.released) != 1 || beds.released[0] != roomID {
		t.Errorf("released rooms = %v, want just the vacated room", beds.released)
	}
}
