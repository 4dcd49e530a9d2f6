package printout

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/medware/hospital-admin/internal/record"
)

var faceSheetTmpl = template.Must(template.New("facesheet").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02 Jan 2006") },
	"deref": func(s *string) string {
		if s == nil {
			return "—"
		}
		return *s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>IPD Case Paper {{.Sheet.IPDNumber}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 20px; text-align: center; }
h2 { font-size: 14px; text-align: center; margin-top: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
td { border: 1px solid #999; padding: 8px 10px; font-size: 13px; width: 50%; }
.label { font-weight: bold; width: 30%; background: #eee; }
.sig { margin-top: 60px; display: flex; justify-content: space-between; font-size: 13px; }
</style>
</head>
<body onload="window.print()">
<h1>{{.HospitalName}}</h1>
<h2>In-Patient Department — Admission Face Sheet</h2>
<table>
<tr><td class="label">PRN</td><td>{{.Sheet.PRN}}</td></tr>
<tr><td class="label">IPD No</td><td>{{.Sheet.IPDNumber}}</td></tr>
<tr><td class="label">Patient Name</td><td>{{.Sheet.PatientName}}</td></tr>
<tr><td class="label">Age / Gender</td><td>{{.Sheet.Age}} / {{.Sheet.Gender}}</td></tr>
<tr><td class="label">Phone</td><td>{{.Sheet.Phone}}</td></tr>
<tr><td class="label">Address</td><td>{{deref .Sheet.Address}}</td></tr>
<tr><td class="label">Emergency Contact</td><td>{{deref .Sheet.EmergencyContact}}</td></tr>
<tr><td class="label">Admission Date</td><td>{{date .Sheet.AdmissionDate}}</td></tr>
<tr><td class="label">Department</td><td>{{.Sheet.Department}}</td></tr>
<tr><td class="label">Attending Doctor</td><td>{{.Sheet.AttendingDoctor}}</td></tr>
<tr><td class="label">Provisional Diagnosis</td><td>{{deref .Sheet.ProvisionalDiagnosis}}</td></tr>
<tr><td class="label">Payer</td><td>{{deref .Sheet.Payer}}</td></tr>
<tr><td class="label">Policy No</td><td>{{deref .Sheet.PolicyNumber}}</td></tr>
</table>
<div class="sig">
<span>Patient / Relative Signature</span>
<span>Admitting Officer</span>
</div>
</body>
</html>`))

type faceSheetView struct {
	HospitalName string
	Sheet        record.FaceSheet
}

// RenderFaceSheet produces the printable IPD case paper.
func RenderFaceSheet(hospitalName string, fs record.FaceSheet) ([]byte, error) {
	var buf bytes.Buffer
	err := faceSheetTmpl.Execute(&buf, faceSheetView{
		HospitalName: hospitalName,
		Sheet:        fs,
	})
	if err != nil {
		return nil, fmt.Errorf("render face sheet: %w", err)
	}
	return buf.Bytes(), nil
}
