package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/cache"
	"github.com/medware/hospital-admin/internal/docnum"
)

const cacheTable = "invoices"

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidStatus = errors.New("invalid invoice status")
	ErrNoItems       = errors.New("invoice needs at least one line item")
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
		log:   log.With().Str("component", "billing").Logger(),
	}
}

type Input struct {
	PatientID uuid.UUID
	Items     []InvoiceItem
	Tax       float64
	Discount  float64
	Status    Status
	IssueDate *time.Time
	DueDate   *time.Time
	Notes     *string
}

func (in Input) validate() error {
	if in.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id", ErrMissingField)
	}
	if len(in.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("%w: item description", ErrMissingField)
		}
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

// Filter narrows an invoice list by patient and status.
type Filter struct {
	PatientID uuid.UUID
	Status    Status
}

func (f Filter) Matches(inv Invoice) bool {
	if f.PatientID != uuid.Nil && inv.PatientID != f.PatientID {
		return false
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	return true
}

func ApplyFilter(invoices []Invoice, f Filter) []Invoice {
	if f.PatientID == uuid.Nil && f.Status == "" {
		return invoices
	}
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if f.Matches(inv) {
			out = append(out, inv)
		}
	}
	return out
}

func (s *Service) List(ctx context.Context, f Filter) ([]Invoice, error) {
	invoices, err := cache.Through(ctx, s.lists, cacheTable, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return ApplyFilter(invoices, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	return inv, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	status := in.Status
	if status == "" {
		status = StatusPending
	}

	issue := now
	if in.IssueDate != nil {
		issue = *in.IssueDate
	}

	inv := Invoice{
		ID:        uuid.New(),
		Number:    docnum.Generate(docnum.PrefixInvoice, issue),
		PatientID: in.PatientID,
		Items:     in.Items,
		Tax:       in.Tax,
		Discount:  in.Discount,
		Status:    status,
		IssueDate: issue,
		DueDate:   in.DueDate,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.Recalculate()

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("invoice_id", created.ID).Str("number", created.Number).Float64("total", created.Total).Msg("invoice created")

	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Items = in.Items
	existing.Tax = in.Tax
	existing.Discount = in.Discount
	if in.Status != "" {
		existing.Status = in.Status
	}
	existing.DueDate = in.DueDate
	existing.Notes = in.Notes
	existing.UpdatedAt = time.Now().UTC()
	existing.Recalculate()

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	s.lists.Invalidate(ctx, cacheTable)

	return updated, nil
}

// MarkPaid settles a Pending or Overdue invoice as of now.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	paid, err := s.repo.MarkPaid(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.lists.Invalidate(ctx, cacheTable)
	s.log.Info().Stringer("invoice_id", id).Float64("total", paid.Total).Msg("invoice paid")

	return paid, nil
}
