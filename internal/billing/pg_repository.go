package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

const invoiceColumns = `
	id, number, patient_id, items, subtotal, tax, discount, total, status,
	issue_date, due_date, payment_date, notes, created_at, updated_at
`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var items []byte

	err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.PatientID,
		&items,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Discount,
		&inv.Total,
		&inv.Status,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.PaymentDate,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("decode invoice items: %w", err)
		}
	}

	return &inv, nil
}

func marshalItems(items []InvoiceItem) ([]byte, error) {
	if items == nil {
		items = []InvoiceItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode invoice items: %w", err)
	}
	return raw, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		ORDER BY issue_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, id)
	return scanInvoice(row)
}

func (r *PgRepository) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	items, err := marshalItems(inv.Items)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (
			id, number, patient_id, items, subtotal, tax, discount, total, status,
			issue_date, due_date, payment_date, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+invoiceColumns,
		inv.ID, inv.Number, inv.PatientID, items, inv.Subtotal, inv.Tax, inv.Discount,
		inv.Total, inv.Status, inv.IssueDate, inv.DueDate, inv.PaymentDate, inv.Notes,
		inv.CreatedAt, inv.UpdatedAt,
	)
	return scanInvoice(row)
}

func (r *PgRepository) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	items, err := marshalItems(inv.Items)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE invoices
		SET items = $2,
		    subtotal = $3,
		    tax = $4,
		    discount = $5,
		    total = $6,
		    status = $7,
		    due_date = $8,
		    notes = $9,
		    updated_at = $10
		WHERE id = $1
		RETURNING `+invoiceColumns,
		inv.ID, items, inv.Subtotal, inv.Tax, inv.Discount, inv.Total, inv.Status,
		inv.DueDate, inv.Notes, inv.UpdatedAt,
	)
	return scanInvoice(row)
}

func (r *PgRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE invoices
		SET status = 'Paid',
		    payment_date = $2,
		    updated_at = $3
		WHERE id = $1
		  AND status IN ('Pending', 'Overdue')
		RETURNING `+invoiceColumns,
		id, at, at,
	)

	inv, err := scanInvoice(row)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, ErrInvoiceNotFound) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr == nil {
		return nil, ErrAlreadySettled
	}
	return nil, ErrInvoiceNotFound
}
