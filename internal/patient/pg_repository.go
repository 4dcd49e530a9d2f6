package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const patientColumns = `
	id, name, gender, date_of_birth, phone, email, address, blood_group,
	emergency_contact, status, admission_date, discharge_date,
	assigned_doctor_id, assigned_room_id, allergies, medical_history,
	created_at, updated_at
`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Gender,
		&p.DateOfBirth,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.BloodGroup,
		&p.EmergencyContact,
		&p.Status,
		&p.AdmissionDate,
		&p.DischargeDate,
		&p.AssignedDoctorID,
		&p.AssignedRoomID,
		&p.Allergies,
		&p.MedicalHistory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) Create(ctx context.Context, p Patient) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (
			id, name, gender, date_of_birth, phone, email, address, blood_group,
			emergency_contact, status, admission_date, discharge_date,
			assigned_doctor_id, assigned_room_id, allergies, medical_history,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+patientColumns,
		p.ID, p.Name, p.Gender, p.DateOfBirth, p.Phone, p.Email, p.Address, p.BloodGroup,
		p.EmergencyContact, p.Status, p.AdmissionDate, p.DischargeDate,
		p.AssignedDoctorID, p.AssignedRoomID, p.Allergies, p.MedicalHistory,
		p.CreatedAt, p.UpdatedAt,
	)
	return scanPatient(row)
}

func (r *PgRepository) Update(ctx context.Context, p Patient) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients
		SET name = $2,
		    gender = $3,
		    date_of_birth = $4,
		    phone = $5,
		    email = $6,
		    address = $7,
		    blood_group = $8,
		    emergency_contact = $9,
		    status = $10,
		    admission_date = $11,
		    assigned_doctor_id = $12,
		    assigned_room_id = $13,
		    allergies = $14,
		    medical_history = $15,
		    updated_at = $16
		WHERE id = $1
		RETURNING `+patientColumns,
		p.ID, p.Name, p.Gender, p.DateOfBirth, p.Phone, p.Email, p.Address,
		p.BloodGroup, p.EmergencyContact, p.Status, p.AdmissionDate,
		p.AssignedDoctorID, p.AssignedRoomID, p.Allergies, p.MedicalHistory,
		p.UpdatedAt,
	)
	return scanPatient(row)
}

func (r *PgRepository) Discharge(ctx context.Context, id uuid.UUID, at time.Time) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients
		SET status = 'Discharged',
		    discharge_date = $2,
		    assigned_room_id = NULL,
		    updated_at = $3
		WHERE id = $1
		  AND status <> 'Discharged'
		RETURNING `+patientColumns,
		id, at, at,
	)

	p, err := scanPatient(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPatientNotFound) {
		return nil, err
	}

	// No row matched: either the patient does not exist or the guard held.
	if _, getErr := r.GetByID(ctx, id); getErr == nil {
		return nil, ErrAlreadyDischarged
	}
	return nil, ErrPatientNotFound
}
