package billing

import "testing"

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name         string
		invoice      Invoice
		wantSubtotal float64
		wantTotal    float64
	}{
		{
			name: "sums item totals",
			invoice: Invoice{
				Items: []InvoiceItem{
					{Description: "Consultation", Quantity: 1, UnitPrice: 500},
					{Description: "Room charges", Quantity: 3, UnitPrice: 2000},
				},
			},
			wantSubtotal: 6500,
			wantTotal:    6500,
		},
		{
			name: "applies tax and discount",
			invoice: Invoice{
				Items:    []InvoiceItem{{Description: "Procedure", Quantity: 2, UnitPrice: 1500}},
				Tax:      540,
				Discount: 300,
			},
			wantSubtotal: 3000,
			wantTotal:    3240,
		},
		{
			name: "clamps negative total to zero",
			invoice: Invoice{
				Items:    []InvoiceItem{{Description: "Consultation", Quantity: 1, UnitPrice: 100}},
				Discount: 500,
			},
			wantSubtotal: 100,
			wantTotal:    0,
		},
		{
			name:         "no items",
			invoice:      Invoice{Tax: 50},
			wantSubtotal: 0,
			wantTotal:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.invoice.Recalculate()
			if tt.invoice.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal = %v, want %v", tt.invoice.Subtotal, tt.wantSubtotal)
			}
			if tt.invoice.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", tt.invoice.Total, tt.wantTotal)
			}
		})
	}
}

func TestRecalculateOverwritesStoredLineTotals(t *testing.T) {
	inv := Invoice{
		Items: []InvoiceItem{
			{Description: "Lab Test", Quantity: 2, UnitPrice: 250, Total: 9999},
		},
	}
	inv.Recalculate()

	if inv.Items[0].Total != 500 {
		t.Errorf("item Total = %v, want 500", inv.Items[0].Total)
	}
	if inv.Subtotal != 500 {
		t.Errorf("Subtotal = %v, want 500", inv.Subtotal)
	}
}
