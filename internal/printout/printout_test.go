package printout

import (
	"bytes"
	"testing"
	"time"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/record"
)

func TestRenderInvoice(t *testing.T) {
	inv := billing.Invoice{
		Number:    "INV-202603-A1B2",
		Status:    billing.StatusPending,
		IssueDate: time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		Items: []billing.InvoiceItem{
			{Description: "Consultation", Category: billing.CategoryConsultation, Quantity: 1, UnitPrice: 500, Total: 500},
		},
		Subtotal: 500,
		Total:    500,
	}
	p := patient.Patient{Name: "Alice <Fernandes>", Phone: "9876543210"}

	doc, err := RenderInvoice("MedWare General Hospital", inv, p)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}

	for _, want := range []string{
		"INV-202603-A1B2",
		"MedWare General Hospital",
		"07 Mar 2026",
		"500.00",
		`onload="window.print()"`,
	} {
		if !bytes.Contains(doc, []byte(want)) {
			t.Errorf("rendered invoice is missing %q", want)
		}
	}

	// html/template must escape the patient name.
	if bytes.Contains(doc, []byte("<Fernandes>")) {
		t.Error("patient name was not HTML-escaped")
	}
}

func TestRenderFaceSheet(t *testing.T) {
	diagnosis := "Acute appendicitis"
	fs := record.FaceSheet{
		PRN:                  "PRN-202603-C3D4",
		IPDNumber:            "IPD-202603-E5F6",
		PatientName:          "Bob Mathew",
		Age:                  42,
		Gender:               "Male",
		Phone:                "9123456780",
		AdmissionDate:        time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Department:           "Surgery",
		AttendingDoctor:      "Dr. Priya Nair",
		ProvisionalDiagnosis: &diagnosis,
	}

	doc, err := RenderFaceSheet("MedWare General Hospital", fs)
	if err != nil {
		t.Fatalf("RenderFaceSheet: %v", err)
	}

	for _, want := range []string{
		"PRN-202603-C3D4",
		"IPD-202603-E5F6",
		"Bob Mathew",
		"Dr. Priya Nair",
		"Acute appendicitis",
		`onload="window.print()"`,
	} {
		if !bytes.Contains(doc, []byte(want)) {
			t.Errorf("rendered face sheet is missing %q", want)
		}
	}
}
