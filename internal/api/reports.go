package api

import (
	"net/http"
	"time"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/report"
)

func reportHandler(patients *patient.Service, invoices *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := report.Granularity(r.URL.Query().Get("granularity"))
		if g == "" {
			g = report.GranularityDay
		}
		if !g.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_granularity", "granularity must be one of day, month, year")
			return
		}

		selected := time.Now().UTC()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := parseDate(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
				return
			}
			selected = parsed
		}

		invs, err := invoices.List(r.Context(), billing.Filter{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		pts, err := patients.List(r.Context(), patient.Filter{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		summaries := report.Aggregate(invs, pts, g, selected)
		writeJSON(w, http.StatusOK, summaries)
	}
}

// dashboardHandler serves the poller's most recent snapshot instead of
// recomputing on demand, so a burst of dashboard clients costs one query set
// per poll interval.
func dashboardHandler(poller *report.Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := poller.Latest()
		if snap.RefreshedAt.IsZero() {
			writeError(w, http.StatusServiceUnavailable, "stats_not_ready", "dashboard stats have not been computed yet")
			return
		}

		writeJSON(w, http.StatusOK, struct {
			report.DashboardStats
			RefreshedAt time.Time `json:"refreshed_at"`
			Stale       bool      `json:"stale"`
		}{
			DashboardStats: snap.Stats,
			RefreshedAt:    snap.RefreshedAt,
			Stale:          snap.Err != nil,
		})
	}
}
