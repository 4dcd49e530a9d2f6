package billing

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

type ItemCategory string

const (
	CategoryConsultation ItemCategory = "Consultation"
	CategoryMedication   ItemCategory = "Medication"
	CategoryLabTest      ItemCategory = "Lab Test"
	CategoryProcedure    ItemCategory = "Procedure"
	CategoryRoomCharge   ItemCategory = "Room Charge"
	CategoryOther        ItemCategory = "Other"
)

type InvoiceItem struct {
	Description string       `json:"description"`
	Category    ItemCategory `json:"category"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	Total       float64      `json:"total"`
}

type Invoice struct {
	ID          uuid.UUID
	Number      string
	PatientID   uuid.UUID
	Items       []InvoiceItem
	Subtotal    float64
	Tax         float64
	Discount    float64
	Total       float64
	Status      Status
	IssueDate   time.Time
	DueDate     *time.Time
	PaymentDate *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recalculate restores the invoice arithmetic after any edit:
//
//	item.Total = item.Quantity * item.UnitPrice
//	Subtotal   = sum of item totals
//	Total      = max(Subtotal + Tax - Discount, 0)
//
// Stored amounts are never trusted from the caller; every write path calls
// this first.
func (inv *Invoice) Recalculate() {
	subtotal := 0.0
	for i := range inv.Items {
		inv.Items[i].Total = float64(inv.Items[i].Quantity) * inv.Items[i].UnitPrice
		subtotal += inv.Items[i].Total
	}
	inv.Subtotal = subtotal

	total := subtotal + inv.Tax - inv.Discount
	if total < 0 {
		total = 0
	}
	inv.Total = total
}
