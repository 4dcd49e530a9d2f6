// Package printout renders the two hard-copy documents: the invoice and the
// IPD face sheet. Both are plain HTML handed to the browser's print dialog;
// nothing machine-readable lives here.
package printout

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date":  func(t time.Time) string { return t.Format("02 Jan 2006") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.Number}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 20px; border-bottom: 2px solid #222; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; font-size: 13px; }
th { background: #eee; }
.totals td { border: none; text-align: right; }
.totals .label { font-weight: bold; }
.meta { font-size: 13px; margin-top: 8px; }
</style>
</head>
<body onload="window.print()">
<h1>{{.HospitalName}} — Invoice</h1>
<div class="meta">
<p><b>Invoice No:</b> {{.Invoice.Number}}<br>
<b>Issue Date:</b> {{date .Invoice.IssueDate}}<br>
<b>Status:</b> {{.Invoice.Status}}</p>
<p><b>Patient:</b> {{.Patient.Name}}<br>
<b>Phone:</b> {{.Patient.Phone}}</p>
</div>
<table>
<tr><th>Description</th><th>Category</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr>
{{range .Invoice.Items}}
<tr><td>{{.Description}}</td><td>{{.Category}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money .Total}}</td></tr>
{{end}}
</table>
<table class="totals">
<tr><td class="label">Subtotal</td><td>{{money .Invoice.Subtotal}}</td></tr>
<tr><td class="label">Tax</td><td>{{money .Invoice.Tax}}</td></tr>
<tr><td class="label">Discount</td><td>{{money .Invoice.Discount}}</td></tr>
<tr><td class="label">Total</td><td>{{money .Invoice.Total}}</td></tr>
</table>
</body>
</html>`))

type invoiceView struct {
	HospitalName string
	Invoice      billing.Invoice
	Patient      patient.Patient
}

// RenderInvoice produces the printable invoice document.
func RenderInvoice(hospitalName string, inv billing.Invoice, p patient.Patient) ([]byte, error) {
	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, invoiceView{
		HospitalName: hospitalName,
		Invoice:      inv,
		Patient:      p,
	})
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
