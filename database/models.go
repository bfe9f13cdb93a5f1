package database

// StudentStatus classifies a student on the roster screen.
type StudentStatus string

const (
	StatusExcellent      StudentStatus = "excellent"
	StatusGood           StudentStatus = "good"
	StatusNeedsAttention StudentStatus = "needs-attention"
	StatusNew            StudentStatus = "new"
)

// EventType categorizes calendar events.
type EventType string

const (
	EventExam     EventType = "exam"
	EventMeeting  EventType = "meeting"
	EventHomework EventType = "homework"
	EventVacation EventType = "vacation"
	EventOther    EventType = "other"
)

// RecordingKind distinguishes captured audio from uploaded files.
type RecordingKind string

const (
	RecordingAudio RecordingKind = "audio"
	RecordingFile  RecordingKind = "file"
)

// ReportStatus follows the draft → generating → completed|error lifecycle.
type ReportStatus string

const (
	ReportDraft      ReportStatus = "draft"
	ReportGenerating ReportStatus = "generating"
	ReportCompleted  ReportStatus = "completed"
	ReportError      ReportStatus = "error"
)

// DefaultColor tags entities created in-app, matching the house gold.
const DefaultColor = "#D4AF37"

type SchoolClass struct {
	ClassID      int64   `db:"class_id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Level        string  `db:"level" json:"level"`
	Subject      string  `db:"subject" json:"subject"`
	StudentCount int     `db:"student_count" json:"student_count"`
	Capacity     int     `db:"capacity" json:"capacity"`
	AverageGrade float64 `db:"average_grade" json:"average_grade"`
	NextExam     string  `db:"next_exam" json:"next_exam"` // ISO day, empty when none scheduled
	Color        string  `db:"color" json:"color"`
}

type Student struct {
	StudentID        int64         `db:"student_id" json:"id"`
	ClassID          int64         `db:"class_id" json:"class_id"`
	FirstName        string        `db:"first_name" json:"first_name"`
	LastName         string        `db:"last_name" json:"last_name"`
	GuardianName     string        `db:"guardian_name" json:"guardian_name"`
	GuardianPhone    string        `db:"guardian_phone" json:"guardian_phone"`
	GuardianEmail    string        `db:"guardian_email" json:"guardian_email"`
	AverageGrade     float64       `db:"average_grade" json:"average_grade"`
	Attendance       int           `db:"attendance" json:"attendance"` // percent
	LastGrade        float64       `db:"last_grade" json:"last_grade"`
	LastGradeSubject string        `db:"last_grade_subject" json:"last_grade_subject"`
	Status           StudentStatus `db:"status" json:"status"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type CalendarEvent struct {
	EventID     int64     `db:"event_id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Type        EventType `db:"type" json:"type"`
	Date        string    `db:"date" json:"date"` // ISO day
	Time        string    `db:"time" json:"time"`
	Location    string    `db:"location" json:"location"`
	Class       string    `db:"class" json:"class"`
	Subject     string    `db:"subject" json:"subject"`
	Duration    int       `db:"duration" json:"duration"` // minutes
}

type Recording struct {
	RecordingID   int64         `db:"recording_id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Subject       string        `db:"subject" json:"subject"`
	Class         string        `db:"class" json:"class"`
	Kind          RecordingKind `db:"kind" json:"kind"`
	Duration      int           `db:"duration" json:"duration"` // seconds, audio only
	FileType      string        `db:"file_type" json:"file_type"`
	Size          string        `db:"size" json:"size"`
	Date          string        `db:"date" json:"date"`
	Description   string        `db:"description" json:"description"`
	URL           string        `db:"url" json:"url"`
	Transcription string        `db:"transcription" json:"transcription"`
}

type Report struct {
	ReportID      int64        `db:"report_id" json:"id"`
	Title         string       `db:"title" json:"title"`
	Period        string       `db:"period" json:"period"`
	Class         string       `db:"class" json:"class"`
	StudentsCount int          `db:"students_count" json:"students_count"`
	Status        ReportStatus `db:"status" json:"status"`
	CreatedDate   string       `db:"created_date" json:"created_date"`
	SentDate      string       `db:"sent_date" json:"sent_date"`
	DownloadCount int          `db:"download_count" json:"download_count"`
	QRCode        string       `db:"qr_code" json:"qr_code"`
	AverageGrade  float64      `db:"average_grade" json:"average_grade"`
	Template      string       `db:"template" json:"template"`
}

// ScheduleEntry is one slot of a class timetable, shown on the class detail
// screen.
type ScheduleEntry struct {
	Day     string `db:"day" json:"day"`
	Time    string `db:"time" json:"time"`
	Subject string `db:"subject" json:"subject"`
}
