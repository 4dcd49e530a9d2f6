package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/printout"
)

type InvoiceItemPayload struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type InvoicePayload struct {
	PatientID string               `json:"patient_id"`
	Items     []InvoiceItemPayload `json:"items"`
	Tax       float64              `json:"tax"`
	Discount  float64              `json:"discount"`
	Status    string               `json:"status,omitempty"`
	IssueDate *string              `json:"issue_date,omitempty"`
	DueDate   *string              `json:"due_date,omitempty"`
	Notes     *string              `json:"notes,omitempty"`
}

func (p InvoicePayload) toInput() (billing.Input, error) {
	patientID, err := uuid.Parse(p.PatientID)
	if err != nil {
		return billing.Input{}, errors.New("patient_id must be a valid UUID")
	}
	issue, err := parseDatePtr(p.IssueDate)
	if err != nil {
		return billing.Input{}, err
	}
	due, err := parseDatePtr(p.DueDate)
	if err != nil {
		return billing.Input{}, err
	}

	items := make([]billing.InvoiceItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, billing.InvoiceItem{
			Description: item.Description,
			Category:    billing.ItemCategory(item.Category),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return billing.Input{
		PatientID: patientID,
		Items:     items,
		Tax:       p.Tax,
		Discount:  p.Discount,
		Status:    billing.Status(p.Status),
		IssueDate: issue,
		DueDate:   due,
		Notes:     p.Notes,
	}, nil
}

type InvoiceResponse struct {
	ID          uuid.UUID             `json:"id"`
	Number      string                `json:"number"`
	PatientID   uuid.UUID             `json:"patient_id"`
	Items       []billing.InvoiceItem `json:"items"`
	Subtotal    float64               `json:"subtotal"`
	Tax         float64               `json:"tax"`
	Discount    float64               `json:"discount"`
	Total       float64               `json:"total"`
	Status      string                `json:"status"`
	IssueDate   time.Time             `json:"issue_date"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
	PaymentDate *time.Time            `json:"payment_date,omitempty"`
	Notes       *string               `json:"notes,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func toInvoiceResponse(inv billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		PatientID:   inv.PatientID,
		Items:       inv.Items,
		Subtotal:    inv.Subtotal,
		Tax:         inv.Tax,
		Discount:    inv.Discount,
		Total:       inv.Total,
		Status:      string(inv.Status),
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		PaymentDate: inv.PaymentDate,
		Notes:       inv.Notes,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func listInvoicesHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f billing.Filter
		if raw := r.URL.Query().Get("patient_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
				return
			}
			f.PatientID = id
		}
		f.Status = billing.Status(r.URL.Query().Get("status"))

		invoices, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]InvoiceResponse, 0, len(invoices))
		for _, inv := range invoices {
			resp = append(resp, toInvoiceResponse(inv))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		inv, err := svc.Get(r.Context(), id)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
	}
}

func createInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload InvoicePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		inv, err := svc.Create(r.Context(), in)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toInvoiceResponse(*inv))
	}
}

func updateInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		var payload InvoicePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, err := payload.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		inv, err := svc.Update(r.Context(), id, in)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
	}
}

func payInvoiceHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		inv, err := svc.MarkPaid(r.Context(), id)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
	}
}

func printInvoiceHandler(invoices *billing.Service, patients *patient.Service, hospitalName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_invoice_id", "id must be a valid UUID")
			return
		}

		inv, err := invoices.Get(r.Context(), id)
		if err != nil {
			handleInvoiceError(w, err)
			return
		}

		p, err := patients.Get(r.Context(), inv.PatientID)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		doc, err := printout.RenderInvoice(hospitalName, *inv, *p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}

func handleInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrMissingField),
		errors.Is(err, billing.ErrInvalidStatus),
		errors.Is(err, billing.ErrNoItems):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, billing.ErrInvoiceNotFound):
		writeError(w, http.StatusNotFound, "invoice_not_found", err.Error())
	case errors.Is(err, billing.ErrAlreadySettled):
		writeError(w, http.StatusConflict, "invoice_already_settled", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
