package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medware/hospital-admin/internal/appointment"
	"github.com/medware/hospital-admin/internal/auth"
	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/doctor"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/record"
	"github.com/medware/hospital-admin/internal/report"
	"github.com/medware/hospital-admin/internal/room"
)

type RouterConfig struct {
	Patients     *patient.Service
	Doctors      *doctor.Service
	Rooms        *room.Service
	Invoices     *billing.Service
	Records      *record.Service
	Appointments *appointment.Service
	Auth         *auth.Service
	Poller       *report.Poller

	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Log          zerolog.Logger
	Env          string
	Version      string
	HospitalName string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", signUpHandler(cfg.Auth))
		r.Post("/auth/signin", signInHandler(cfg.Auth))

		// Everything below requires a session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Auth))

			r.Get("/auth/me", meHandler())
			r.Get("/users", listUsersHandler(cfg.Auth))

			r.Get("/patients", listPatientsHandler(cfg.Patients))
			r.Post("/patients", admitPatientHandler(cfg.Patients))
			r.Get("/patients/{id}", getPatientHandler(cfg.Patients))
			r.Put("/patients/{id}", updatePatientHandler(cfg.Patients))
			r.Post("/patients/{id}/discharge", dischargePatientHandler(cfg.Patients))

			r.Get("/doctors", listDoctorsHandler(cfg.Doctors))
			r.Post("/doctors", createDoctorHandler(cfg.Doctors))
			r.Get("/doctors/{id}", getDoctorHandler(cfg.Doctors))
			r.Put("/doctors/{id}", updateDoctorHandler(cfg.Doctors))

			r.Get("/rooms", listRoomsHandler(cfg.Rooms))
			r.Post("/rooms", createRoomHandler(cfg.Rooms))
			r.Get("/rooms/{id}", getRoomHandler(cfg.Rooms))
			r.Put("/rooms/{id}", updateRoomHandler(cfg.Rooms))

			r.Get("/invoices", listInvoicesHandler(cfg.Invoices))
			r.Post("/invoices", createInvoiceHandler(cfg.Invoices))
			r.Get("/invoices/{id}", getInvoiceHandler(cfg.Invoices))
			r.Put("/invoices/{id}", updateInvoiceHandler(cfg.Invoices))
			r.Post("/invoices/{id}/pay", payInvoiceHandler(cfg.Invoices))
			r.Get("/invoices/{id}/print", printInvoiceHandler(cfg.Invoices, cfg.Patients, cfg.HospitalName))

			r.Get("/medical-records", listRecordsHandler(cfg.Records))
			r.Post("/medical-records", createRecordHandler(cfg.Records))
			r.Get("/medical-records/{id}", getRecordHandler(cfg.Records))
			r.Put("/medical-records/{id}", updateRecordHandler(cfg.Records))

			r.Get("/face-sheets", listFaceSheetsHandler(cfg.Records))
			r.Post("/face-sheets", createFaceSheetHandler(cfg.Records))
			r.Get("/face-sheets/{id}", getFaceSheetHandler(cfg.Records))
			r.Put("/face-sheets/{id}", updateFaceSheetHandler(cfg.Records))
			r.Delete("/face-sheets/{id}", deleteFaceSheetHandler(cfg.Records))
			r.Get("/face-sheets/{id}/print", printFaceSheetHandler(cfg.Records, cfg.HospitalName))

			r.Get("/appointments", listAppointmentsHandler(cfg.Appointments))
			r.Post("/appointments", scheduleAppointmentHandler(cfg.Appointments))
			r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
			r.Post("/appointments/{id}/status", transitionAppointmentHandler(cfg.Appointments))

			r.Get("/reports", reportHandler(cfg.Patients, cfg.Invoices))
			r.Get("/dashboard/stats", dashboardHandler(cfg.Poller))
		})
	})

	return r
}
