package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const recordColumns = `
	id, patient_id, doctor_id, visit_type, chief_complaint, diagnosis, vitals,
	medications, lab_results, notes, face_sheet_snapshot, created_at, updated_at
`

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	var vitals, medications, labResults, snapshot []byte

	err := row.Scan(
		&rec.ID,
		&rec.PatientID,
		&rec.DoctorID,
		&rec.VisitType,
		&rec.ChiefComplaint,
		&rec.Diagnosis,
		&vitals,
		&medications,
		&labResults,
		&rec.Notes,
		&snapshot,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := decodeJSON(vitals, &rec.Vitals); err != nil {
		return nil, fmt.Errorf("decode vitals: %w", err)
	}
	if err := decodeJSON(medications, &rec.Medications); err != nil {
		return nil, fmt.Errorf("decode medications: %w", err)
	}
	if err := decodeJSON(labResults, &rec.LabResults); err != nil {
		return nil, fmt.Errorf("decode lab results: %w", err)
	}
	if err := decodeJSON(snapshot, &rec.FaceSheetSnapshot); err != nil {
		return nil, fmt.Errorf("decode face sheet snapshot: %w", err)
	}

	return &rec, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func encodeJSON(src any) ([]byte, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *PgRepository) ListRecords(ctx context.Context) ([]MedicalRecord, error) {
	return r.listRecords(ctx, `
		SELECT `+recordColumns+`
		FROM medical_records
		ORDER BY created_at DESC
	`)
}

func (r *PgRepository) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]MedicalRecord, error) {
	return r.listRecords(ctx, `
		SELECT `+recordColumns+`
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
}

func (r *PgRepository) listRecords(ctx context.Context, query string, args ...any) ([]MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MedicalRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetRecordByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM medical_records
		WHERE id = $1
	`, id)
	return scanRecord(row)
}

func (r *PgRepository) CreateRecord(ctx context.Context, rec MedicalRecord) (*MedicalRecord, error) {
	vitals, err := encodeJSON(rec.Vitals)
	if err != nil {
		return nil, fmt.Errorf("encode vitals: %w", err)
	}
	medications, err := encodeJSON(rec.Medications)
	if err != nil {
		return nil, fmt.Errorf("encode medications: %w", err)
	}
	labResults, err := encodeJSON(rec.LabResults)
	if err != nil {
		return nil, fmt.Errorf("encode lab results: %w", err)
	}
	snapshot, err := encodeJSON(rec.FaceSheetSnapshot)
	if err != nil {
		return nil, fmt.Errorf("encode face sheet snapshot: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO medical_records (
			id, patient_id, doctor_id, visit_type, chief_complaint, diagnosis, vitals,
			medications, lab_results, notes, face_sheet_snapshot, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+recordColumns,
		rec.ID, rec.PatientID, rec.DoctorID, rec.VisitType, rec.ChiefComplaint,
		rec.Diagnosis, vitals, medications, labResults, rec.Notes, snapshot,
		rec.CreatedAt, rec.UpdatedAt,
	)
	return scanRecord(row)
}

func (r *PgRepository) UpdateRecord(ctx context.Context, rec MedicalRecord) (*MedicalRecord, error) {
	vitals, err := encodeJSON(rec.Vitals)
	if err != nil {
		return nil, fmt.Errorf("encode vitals: %w", err)
	}
	medications, err := encodeJSON(rec.Medications)
	if err != nil {
		return nil, fmt.Errorf("encode medications: %w", err)
	}
	labResults, err := encodeJSON(rec.LabResults)
	if err != nil {
		return nil, fmt.Errorf("encode lab results: %w", err)
	}

	// The face sheet snapshot is point-in-time and is not rewritten here.
	row := r.pool.QueryRow(ctx, `
		UPDATE medical_records
		SET visit_type = $2,
		    chief_complaint = $3,
		    diagnosis = $4,
		    vitals = $5,
		    medications = $6,
		    lab_results = $7,
		    notes = $8,
		    updated_at = $9
		WHERE id = $1
		RETURNING `+recordColumns,
		rec.ID, rec.VisitType, rec.ChiefComplaint, rec.Diagnosis, vitals,
		medications, labResults, rec.Notes, rec.UpdatedAt,
	)
	return scanRecord(row)
}

const faceSheetColumns = `
	id, prn, ipd_number, patient_id, patient_name, age, gender, address, phone,
	emergency_contact, admission_date, department, attending_doctor,
	provisional_diagnosis, payer, policy_number, created_at, updated_at
`

func scanFaceSheet(row pgx.Row) (*FaceSheet, error) {
	var fs FaceSheet

	err := row.Scan(
		&fs.ID,
		&fs.PRN,
		&fs.IPDNumber,
		&fs.PatientID,
		&fs.PatientName,
		&fs.Age,
		&fs.Gender,
		&fs.Address,
		&fs.Phone,
		&fs.EmergencyContact,
		&fs.AdmissionDate,
		&fs.Department,
		&fs.AttendingDoctor,
		&fs.ProvisionalDiagnosis,
		&fs.Payer,
		&fs.PolicyNumber,
		&fs.CreatedAt,
		&fs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFaceSheetNotFound
		}
		return nil, err
	}

	return &fs, nil
}

func (r *PgRepository) ListFaceSheets(ctx context.Context) ([]FaceSheet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+faceSheetColumns+`
		FROM face_sheets
		ORDER BY admission_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FaceSheet
	for rows.Next() {
		fs, err := scanFaceSheet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *fs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetFaceSheetByID(ctx context.Context, id uuid.UUID) (*FaceSheet, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+faceSheetColumns+`
		FROM face_sheets
		WHERE id = $1
	`, id)
	return scanFaceSheet(row)
}

func (r *PgRepository) CreateFaceSheet(ctx context.Context, fs FaceSheet) (*FaceSheet, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO face_sheets (
			id, prn, ipd_number, patient_id, patient_name, age, gender, address, phone,
			emergency_contact, admission_date, department, attending_doctor,
			provisional_diagnosis, payer, policy_number, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+faceSheetColumns,
		fs.ID, fs.PRN, fs.IPDNumber, fs.PatientID, fs.PatientName, fs.Age, fs.Gender,
		fs.Address, fs.Phone, fs.EmergencyContact, fs.AdmissionDate, fs.Department,
		fs.AttendingDoctor, fs.ProvisionalDiagnosis, fs.Payer, fs.PolicyNumber,
		fs.CreatedAt, fs.UpdatedAt,
	)
	return scanFaceSheet(row)
}

func (r *PgRepository) UpdateFaceSheet(ctx context.Context, fs FaceSheet) (*FaceSheet, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE face_sheets
		SET patient_name = $2,
		    age = $3,
		    gender = $4,
		    address = $5,
		    phone = $6,
		    emergency_contact = $7,
		    admission_date = $8,
		    department = $9,
		    attending_doctor = $10,
		    provisional_diagnosis = $11,
		    payer = $12,
		    policy_number = $13,
		    updated_at = $14
		WHERE id = $1
		RETURNING `+faceSheetColumns,
		fs.ID, fs.PatientName, fs.Age, fs.Gender, fs.Address, fs.Phone,
		fs.EmergencyContact, fs.AdmissionDate, fs.Department, fs.AttendingDoctor,
		fs.ProvisionalDiagnosis, fs.Payer, fs.PolicyNumber, fs.UpdatedAt,
	)
	return scanFaceSheet(row)
}

func (r *PgRepository) DeleteFaceSheet(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM face_sheets
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFaceSheetNotFound
	}
	return nil
}
