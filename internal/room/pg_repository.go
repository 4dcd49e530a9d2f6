package room

import (
	"context"
	"errors"

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

const roomColumns = `
	id, number, type, floor, capacity, current_occupancy, status, daily_rate,
	amenities, equipment, assigned_patients, created_at, updated_at
`

func scanRoom(row pgx.Row) (*Room, error) {
	var r Room

	err := row.Scan(
		&r.ID,
		&r.Number,
		&r.Type,
		&r.Floor,
		&r.Capacity,
		&r.CurrentOccupancy,
		&r.Status,
		&r.DailyRate,
		&r.Amenities,
		&r.Equipment,
		&r.AssignedPatients,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &r, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Room, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		ORDER BY number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rm)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		WHERE id = $1
	`, id)
	return scanRoom(row)
}

func (r *PgRepository) Create(ctx context.Context, rm Room) (*Room, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rooms (
			id, number, type, floor, capacity, current_occupancy, status, daily_rate,
			amenities, equipment, assigned_patients, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+roomColumns,
		rm.ID, rm.Number, rm.Type, rm.Floor, rm.Capacity, rm.CurrentOccupancy, rm.Status,
		rm.DailyRate, rm.Amenities, rm.Equipment, rm.AssignedPatients, rm.CreatedAt, rm.UpdatedAt,
	)
	return scanRoom(row)
}

func (r *PgRepository) Update(ctx context.Context, rm Room) (*Room, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE rooms
		SET number = $2,
		    type = $3,
		    floor = $4,
		    capacity = $5,
		    current_occupancy = $6,
		    status = $7,
		    daily_rate = $8,
		    amenities = $9,
		    equipment = $10,
		    assigned_patients = $11,
		    updated_at = $12
		WHERE id = $1
		RETURNING `+roomColumns,
		rm.ID, rm.Number, rm.Type, rm.Floor, rm.Capacity, rm.CurrentOccupancy, rm.Status,
		rm.DailyRate, rm.Amenities, rm.Equipment, rm.AssignedPatients, rm.UpdatedAt,
	)
	return scanRoom(row)
}
