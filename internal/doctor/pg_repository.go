package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const doctorColumns = `
	id, name, specialization, department, phone, email, qualification,
	consultation_fee, capacity, status, schedule, created_at, updated_at
`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var schedule []byte

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Department,
		&d.Phone,
		&d.Email,
		&d.Qualification,
		&d.ConsultationFee,
		&d.Capacity,
		&d.Status,
		&schedule,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &d.Schedule); err != nil {
			return nil, fmt.Errorf("decode doctor schedule: %w", err)
		}
	}

	return &d, nil
}

func marshalSchedule(s Schedule) ([]byte, error) {
	if s == nil {
		s = Schedule{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode doctor schedule: %w", err)
	}
	return raw, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (r *PgRepository) Create(ctx context.Context, d Doctor) (*Doctor, error) {
	schedule, err := marshalSchedule(d.Schedule)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (
			id, name, specialization, department, phone, email, qualification,
			consultation_fee, capacity, status, schedule, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+doctorColumns,
		d.ID, d.Name, d.Specialization, d.Department, d.Phone, d.Email, d.Qualification,
		d.ConsultationFee, d.Capacity, d.Status, schedule, d.CreatedAt, d.UpdatedAt,
	)
	return scanDoctor(row)
}

func (r *PgRepository) Update(ctx context.Context, d Doctor) (*Doctor, error) {
	schedule, err := marshalSchedule(d.Schedule)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE doctors
		SET name = $2,
		    specialization = $3,
		    department = $4,
		    phone = $5,
		    email = $6,
		    qualification = $7,
		    consultation_fee = $8,
		    capacity = $9,
		    status = $10,
		    schedule = $11,
		    updated_at = $12
		WHERE id = $1
		RETURNING `+doctorColumns,
		d.ID, d.Name, d.Specialization, d.Department, d.Phone, d.Email, d.Qualification,
		d.ConsultationFee, d.Capacity, d.Status, schedule, d.UpdatedAt,
	)
	return scanDoctor(row)
}
