package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/db"
	"github.com/medware/hospital-admin/internal/docnum"
	"github.com/medware/hospital-admin/internal/doctor"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn, 4)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	bg := context.Background()

	if err := seedUsers(bg, pool); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	doctorIDs, err := seedDoctors(bg, pool, 20)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	roomIDs, err := seedRooms(bg, pool, 40)
	if err != nil {
		log.Fatalf("seed rooms: %v", err)
	}
	patientIDs, err := seedPatients(bg, pool, 200, doctorIDs, roomIDs)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedInvoices(bg, pool, 300, patientIDs); err != nil {
		log.Fatalf("seed invoices: %v", err)
	}
	if err := seedAppointments(bg, pool, 300, patientIDs, doctorIDs); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("seeding users")

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		name, email, role string
	}{
		{"Admin", "admin@medware.test", "admin"},
		{gofakeit.Name(), "doctor@medware.test", "doctor"},
		{gofakeit.Name(), "nurse@medware.test", "nurse"},
		{gofakeit.Name(), "frontdesk@medware.test", "receptionist"},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, u := range users {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, $6, $6)
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), u.name, u.email, string(hash), u.role, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d doctors", count)

	specializations := []string{
		"General Medicine",
		"Cardiology",
		"Orthopedics",
		"Pediatrics",
		"Neurology",
		"Dermatology",
		"Gynecology",
		"ENT",
	}
	departments := []string{"OPD", "IPD", "Emergency", "Surgery", "ICU"}

	schedule, err := json.Marshal(map[string]string{
		"monday":    "09:00-17:00",
		"tuesday":   "09:00-17:00",
		"wednesday": "09:00-17:00",
		"thursday":  "09:00-17:00",
		"friday":    "09:00-13:00",
	})
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, specialization, department, phone, email,
				qualification, consultation_fee, capacity, status, schedule, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'Active', $10, $11, $11)
		`, id, "Dr. "+gofakeit.Name(), spec,
			departments[gofakeit.Number(0, len(departments)-1)],
			gofakeit.Phone(), gofakeit.Email(), "MBBS, MD",
			doctor.FeeForSpecialization(spec, 0), gofakeit.Number(10, 30), schedule, now)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

func seedRooms(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d rooms", count)

	types := []string{"General", "Private", "Semi-Private", "ICU", "Emergency"}
	amenities := []string{"AC", "TV", "Attached Bathroom", "Oxygen Line"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		floor := i/10 + 1
		roomType := types[gofakeit.Number(0, len(types)-1)]
		capacity := 1
		if roomType == "General" {
			capacity = 4
		} else if roomType == "Semi-Private" {
			capacity = 2
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO rooms (id, number, type, floor, capacity, current_occupancy,
				status, daily_rate, amenities, equipment, assigned_patients, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 0, 'Available', $6, $7, '{}', '{}', $8, $8)
		`, id, gofakeit.Numerify("##0#"), roomType, floor, capacity,
			float64(gofakeit.Number(1000, 8000)),
			amenities[:gofakeit.Number(1, len(amenities))], now)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("rooms seeded")
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int, doctorIDs, roomIDs []uuid.UUID) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	statuses := []string{"Admitted", "Stable", "Critical", "Discharged"}
	bloodGroups := []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	const batchSize = 100

	now := time.Now().UTC()
	ids := make([]uuid.UUID, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			status := statuses[gofakeit.Number(0, len(statuses)-1)]
			admitted := now.AddDate(0, 0, -gofakeit.Number(0, 90))

			var discharged *time.Time
			var roomID *uuid.UUID
			if status == "Discharged" {
				d := admitted.AddDate(0, 0, gofakeit.Number(1, 14))
				discharged = &d
			} else {
				r := roomIDs[gofakeit.Number(0, len(roomIDs)-1)]
				roomID = &r
			}
			doctorID := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
			dob := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-1, 0, 0))

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, name, gender, date_of_birth, phone, email, address,
					blood_group, emergency_contact, status, admission_date, discharge_date,
					assigned_doctor_id, assigned_room_id, allergies, medical_history,
					created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, '{}', NULL, $15, $15)
			`, id, gofakeit.Name(), gofakeit.Gender(), dob, gofakeit.Phone(),
				gofakeit.Email(), gofakeit.Address().Address,
				bloodGroups[gofakeit.Number(0, len(bloodGroups)-1)], gofakeit.Phone(),
				status, admitted, discharged, doctorID, roomID, now)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	return ids, nil
}

func seedInvoices(ctx context.Context, pool *pgxpool.Pool, count int, patientIDs []uuid.UUID) error {
	log.Printf("seeding %d invoices", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		issue := now.AddDate(0, 0, -gofakeit.Number(0, 120))

		inv := billing.Invoice{
			Items: []billing.InvoiceItem{
				{
					Description: "Consultation",
					Category:    billing.CategoryConsultation,
					Quantity:    1,
					UnitPrice:   float64(gofakeit.Number(500, 1500)),
				},
				{
					Description: "Room charges",
					Category:    billing.CategoryRoomCharge,
					Quantity:    gofakeit.Number(1, 7),
					UnitPrice:   float64(gofakeit.Number(1000, 5000)),
				},
			},
			Tax:      float64(gofakeit.Number(0, 800)),
			Discount: float64(gofakeit.Number(0, 500)),
		}
		inv.Recalculate()

		status := "Pending"
		var paid *time.Time
		if gofakeit.Bool() {
			status = "Paid"
			p := issue.AddDate(0, 0, gofakeit.Number(0, 30))
			paid = &p
		}

		items, err := json.Marshal(inv.Items)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO invoices (id, number, patient_id, items, subtotal, tax, discount,
				total, status, issue_date, due_date, payment_date, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL, $13, $13)
		`, uuid.New(), docnum.Generate(docnum.PrefixInvoice, issue),
			patientIDs[gofakeit.Number(0, len(patientIDs)-1)], items,
			inv.Subtotal, inv.Tax, inv.Discount, inv.Total, status,
			issue, issue.AddDate(0, 0, 15), paid, now)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("invoices seeded")
	return nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, count int, patientIDs, doctorIDs []uuid.UUID) error {
	log.Printf("seeding %d appointments", count)

	statuses := []string{"Scheduled", "Completed", "Cancelled", "No Show"}
	reasons := []string{"Follow-up", "Consultation", "Routine checkup", "Lab review", "Post-op review"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		scheduled := now.AddDate(0, 0, gofakeit.Number(-30, 30))

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, patient_id, doctor_id, scheduled_at,
				duration_minutes, reason, status, fee, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		`, uuid.New(),
			patientIDs[gofakeit.Number(0, len(patientIDs)-1)],
			doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)],
			scheduled, 30, reasons[gofakeit.Number(0, len(reasons)-1)],
			statuses[gofakeit.Number(0, len(statuses)-1)],
			float64(gofakeit.Number(500, 1500)), now)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}
