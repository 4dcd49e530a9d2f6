// Package report holds the period-bucketing aggregation behind the report
// tab and the dashboard stats feed. Everything here is pure reduction over
// in-memory collections; nothing talks to the store.
package report

import (
	"sort"
	"time"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// PeriodSummary is one report row. The admitted/discharged/critical counters
// reflect each patient's *current* status filed under their admission-date
// bucket, so a long-discharged patient counts as "discharged" in the bucket
// of their original admission.
type PeriodSummary struct {
	Period       string  `json:"period"`
	TotalRevenue float64 `json:"total_revenue"`
	PatientCount int     `json:"patient_count"`
	Admitted     int     `json:"admitted"`
	Discharged   int     `json:"discharged"`
	Critical     int     `json:"critical"`
}

// PeriodKey formats t into the bucket key for a granularity, in t's own
// location.
func PeriodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// Aggregate buckets invoices by issue date and patients by admission date,
// then keeps only the bucket(s) matching the selected period. Records with a
// zero date are skipped, never an error, and an empty result is a valid "no
// data" answer.
func Aggregate(invoices []billing.Invoice, patients []patient.Patient, g Granularity, selected time.Time) []PeriodSummary {
	if !g.Valid() {
		g = GranularityDay
	}

	buckets := make(map[string]*PeriodSummary)
	bucket := func(key string) *PeriodSummary {
		b, ok := buckets[key]
		if !ok {
			b = &PeriodSummary{Period: key}
			buckets[key] = b
		}
		return b
	}

	for _, inv := range invoices {
		if inv.IssueDate.IsZero() {
			continue
		}
		bucket(PeriodKey(inv.IssueDate, g)).TotalRevenue += inv.Total
	}

	for _, p := range patients {
		if p.AdmissionDate == nil || p.AdmissionDate.IsZero() {
			continue
		}
		b := bucket(PeriodKey(*p.AdmissionDate, g))
		b.PatientCount++
		switch p.Status {
		case patient.StatusAdmitted:
			b.Admitted++
		case patient.StatusDischarged:
			b.Discharged++
		case patient.StatusCritical:
			b.Critical++
		}
	}

	selectedKey := PeriodKey(selected, g)

	result := make([]PeriodSummary, 0, 1)
	for key, b := range buckets {
		if key == selectedKey {
			result = append(result, *b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Period > result[j].Period
	})

	return result
}
