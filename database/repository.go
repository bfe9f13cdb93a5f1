package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// The repositories implement collection.Source against Postgres, one per
// entity category. They replace the simulated sources when DATABASE_URI is
// set.

type ClassRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) FetchAll(ctx context.Context) ([]SchoolClass, error) {
	var classes []SchoolClass
	err := r.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY class_id`)
	return classes, err
}

func (r *ClassRepository) Create(ctx context.Context, c SchoolClass) (SchoolClass, error) {
	err := r.db.GetContext(ctx, &c.ClassID, `
        INSERT INTO classes (name, level, subject, student_count, capacity, average_grade, next_exam, color)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING class_id`,
		c.Name, c.Level, c.Subject, c.StudentCount, c.Capacity, c.AverageGrade, c.NextExam, c.Color)
	return c, err
}

func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE class_id = $1`, id)
	return err
}

// StudentRepository serves one class roster; the class id is bound at
// construction so the repository satisfies the per-screen source contract.
type StudentRepository struct {
	db      *sqlx.DB
	classID int64
}

func NewStudentRepository(db *sqlx.DB, classID int64) *StudentRepository {
	return &StudentRepository{db: db, classID: classID}
}

func (r *StudentRepository) FetchAll(ctx context.Context) ([]Student, error) {
	var students []Student
	err := r.db.SelectContext(ctx, &students, `
        SELECT * FROM students
        WHERE class_id = $1
        ORDER BY student_id`, r.classID)
	return students, err
}

func (r *StudentRepository) Create(ctx context.Context, s Student) (Student, error) {
	s.ClassID = r.classID
	err := r.db.GetContext(ctx, &s.StudentID, `
        INSERT INTO students (class_id, first_name, last_name, guardian_name, guardian_phone,
                              guardian_email, average_grade, attendance, last_grade, last_grade_subject, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING student_id`,
		s.ClassID, s.FirstName, s.LastName, s.GuardianName, s.GuardianPhone,
		s.GuardianEmail, s.AverageGrade, s.Attendance, s.LastGrade, s.LastGradeSubject, s.Status)
	return s, err
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = $1`, id)
	return err
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) FetchAll(ctx context.Context) ([]CalendarEvent, error) {
	var events []CalendarEvent
	err := r.db.SelectContext(ctx, &events, `SELECT * FROM events ORDER BY event_id`)
	return events, err
}

func (r *EventRepository) Create(ctx context.Context, e CalendarEvent) (CalendarEvent, error) {
	err := r.db.GetContext(ctx, &e.EventID, `
        INSERT INTO events (title, description, type, date, time, location, class, subject, duration)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING event_id`,
		e.Title, e.Description, e.Type, e.Date, e.Time, e.Location, e.Class, e.Subject, e.Duration)
	return e, err
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	return err
}

type RecordingRepository struct {
	db *sqlx.DB
}

func NewRecordingRepository(db *sqlx.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

func (r *RecordingRepository) FetchAll(ctx context.Context) ([]Recording, error) {
	var recordings []Recording
	err := r.db.SelectContext(ctx, &recordings, `SELECT * FROM recordings ORDER BY recording_id DESC`)
	return recordings, err
}

func (r *RecordingRepository) Create(ctx context.Context, rec Recording) (Recording, error) {
	err := r.db.GetContext(ctx, &rec.RecordingID, `
        INSERT INTO recordings (title, subject, class, kind, duration, file_type, size, date, description, url, transcription)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING recording_id`,
		rec.Title, rec.Subject, rec.Class, rec.Kind, rec.Duration, rec.FileType,
		rec.Size, rec.Date, rec.Description, rec.URL, rec.Transcription)
	return rec, err
}

func (r *RecordingRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recordings WHERE recording_id = $1`, id)
	return err
}

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) FetchAll(ctx context.Context) ([]Report, error) {
	var reports []Report
	err := r.db.SelectContext(ctx, &reports, `SELECT * FROM reports ORDER BY report_id DESC`)
	return reports, err
}

func (r *ReportRepository) Create(ctx context.Context, rep Report) (Report, error) {
	err := r.db.GetContext(ctx, &rep.ReportID, `
        INSERT INTO reports (title, period, class, students_count, status, created_date,
                             sent_date, download_count, qr_code, average_grade, template)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING report_id`,
		rep.Title, rep.Period, rep.Class, rep.StudentsCount, rep.Status, rep.CreatedDate,
		rep.SentDate, rep.DownloadCount, rep.QRCode, rep.AverageGrade, rep.Template)
	return rep, err
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE report_id = $1`, id)
	return err
}

// UpdateStatus records the outcome of a background generation.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status ReportStatus, qrCode string, averageGrade float64) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE reports
        SET status = $1, qr_code = $2, average_grade = $3
        WHERE report_id = $4`,
		status, qrCode, averageGrade, id)
	return err
}
