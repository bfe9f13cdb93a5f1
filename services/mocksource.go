package services

import (
	"context"
	"time"

	"cmanagement/database"
)

// MockSource simulates the future backend for one entity category: a fixed
// artificial delay in front of a canned dataset. It satisfies
// collection.Source so the screens never know the difference.
type MockSource[T any] struct {
	delay time.Duration
	data  func() []T
}

func NewMockSource[T any](delay time.Duration, data func() []T) *MockSource[T] {
	return &MockSource[T]{delay: delay, data: data}
}

func (m *MockSource[T]) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}

func (m *MockSource[T]) FetchAll(ctx context.Context) ([]T, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.data(), nil
}

// Create echoes the item back; ids stay client-assigned until a real
// backend takes over.
func (m *MockSource[T]) Create(ctx context.Context, item T) (T, error) {
	if err := m.wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (m *MockSource[T]) Delete(ctx context.Context, id int64) error {
	return m.wait(ctx)
}

// The datasets below seed the simulated sources.

func MockClasses() []database.SchoolClass {
	return []database.SchoolClass{
		{ClassID: 1, Name: "6ème A", Level: "6ème", Subject: "Toutes matières", StudentCount: 28, Capacity: 30, AverageGrade: 13.5, NextExam: "2025-01-20", Color: "#4ECDC4"},
		{ClassID: 2, Name: "5ème B", Level: "5ème", Subject: "Toutes matières", StudentCount: 25, Capacity: 30, AverageGrade: 14.2, NextExam: "2025-01-18", Color: "#FF6B6B"},
		{ClassID: 3, Name: "4ème A", Level: "4ème", Subject: "Toutes matières", StudentCount: 32, Capacity: 35, AverageGrade: 12.8, NextExam: "2025-01-22", Color: "#9B59B6"},
		{ClassID: 4, Name: "3ème A", Level: "3ème", Subject: "Toutes matières", StudentCount: 30, Capacity: 32, AverageGrade: 15.1, NextExam: "2025-01-15", Color: "#F39C12"},
		{ClassID: 5, Name: "Mathématiques Spé", Level: "Terminale", Subject: "Mathématiques", StudentCount: 18, Capacity: 25, AverageGrade: 16.3, NextExam: "2025-01-25", Color: "#2ECC71"},
		{ClassID: 6, Name: "Physique-Chimie", Level: "1ère", Subject: "Sciences", StudentCount: 22, Capacity: 25, AverageGrade: 13.9, NextExam: "2025-01-19", Color: "#E74C3C"},
	}
}

func MockStudents(classID int64) []database.Student {
	return []database.Student{
		{StudentID: 1, ClassID: classID, FirstName: "Emma", LastName: "Martin", AverageGrade: 15.2, Attendance: 96, LastGrade: 16, LastGradeSubject: "Mathématiques",
			GuardianName: "Sophie Martin", GuardianPhone: "+33 6 12 34 56 78", GuardianEmail: "sophie.martin@email.com", Status: database.StatusExcellent},
		{StudentID: 2, ClassID: classID, FirstName: "Lucas", LastName: "Dubois", AverageGrade: 12.8, Attendance: 88, LastGrade: 14, LastGradeSubject: "Français",
			GuardianName: "Pierre Dubois", GuardianPhone: "+33 6 87 65 43 21", GuardianEmail: "pierre.dubois@email.com", Status: database.StatusGood},
		{StudentID: 3, ClassID: classID, FirstName: "Léa", LastName: "Bernard", AverageGrade: 9.5, Attendance: 82, LastGrade: 8, LastGradeSubject: "Sciences",
			GuardianName: "Anne Bernard", GuardianPhone: "+33 6 23 45 67 89", GuardianEmail: "anne.bernard@email.com", Status: database.StatusNeedsAttention},
		{StudentID: 4, ClassID: classID, FirstName: "Nathan", LastName: "Leroy", AverageGrade: 14.7, Attendance: 94, LastGrade: 17, LastGradeSubject: "Histoire-Géo",
			GuardianName: "Marc Leroy", GuardianPhone: "+33 6 98 76 54 32", GuardianEmail: "marc.leroy@email.com", Status: database.StatusExcellent},
		{StudentID: 5, ClassID: classID, FirstName: "Chloé", LastName: "Moreau", AverageGrade: 11.2, Attendance: 90, LastGrade: 12, LastGradeSubject: "Anglais",
			GuardianName: "Julie Moreau", GuardianPhone: "+33 6 45 67 89 12", GuardianEmail: "julie.moreau@email.com", Status: database.StatusGood},
	}
}

func MockEvents() []database.CalendarEvent {
	return []database.CalendarEvent{
		{EventID: 1, Title: "Examen Mathématiques", Description: "Examen trimestriel de mathématiques pour la 3ème A",
			Type: database.EventExam, Date: "2025-01-15", Time: "08:00", Location: "Salle 201", Class: "3ème A", Subject: "Mathématiques", Duration: 120},
		{EventID: 2, Title: "Réunion Parents", Description: "Rencontre parents-professeurs 3ème A",
			Type: database.EventMeeting, Date: "2025-01-18", Time: "18:00", Location: "Salle de conférence", Class: "3ème A", Duration: 90},
		{EventID: 3, Title: "Devoir Français", Description: "Remise du devoir de dissertation",
			Type: database.EventHomework, Date: "2025-01-20", Time: "14:00", Location: "Salle 103", Class: "2nde B", Subject: "Français"},
		{EventID: 4, Title: "Examen Physique", Description: "Contrôle de physique-chimie",
			Type: database.EventExam, Date: "2025-01-20", Time: "10:00", Location: "Lab Sciences", Class: "1ère S", Subject: "Physique-Chimie", Duration: 90},
		{EventID: 5, Title: "Remise des bulletins", Description: "Distribution des bulletins du 1er trimestre",
			Type: database.EventOther, Date: "2025-01-22", Time: "16:00", Location: "Hall principal", Class: "Toutes classes"},
		{EventID: 6, Title: "Vacances scolaires", Description: "Début des vacances d'hiver",
			Type: database.EventVacation, Date: "2025-01-25", Class: "Toutes classes"},
	}
}

func MockRecordings() []database.Recording {
	return []database.Recording{
		{RecordingID: 1, Title: "Cours Mathématiques - Équations", Subject: "Mathématiques", Class: "3ème A", Kind: database.RecordingAudio,
			Duration: 2340, Size: "15.2 MB", Date: "2025-01-10", Description: "Cours sur les équations du second degré avec exercices pratiques",
			URL: "https://example.com/audio1.mp3"},
		{RecordingID: 2, Title: "Présentation Histoire - Révolution", Subject: "Histoire", Class: "2nde B", Kind: database.RecordingFile,
			FileType: "pdf", Size: "8.5 MB", Date: "2025-01-09", Description: "Support de cours sur la Révolution française",
			URL: "https://example.com/histoire.pdf"},
		{RecordingID: 3, Title: "Cours Physique - Électricité", Subject: "Physique", Class: "1ère S", Kind: database.RecordingAudio,
			Duration: 1980, Size: "12.8 MB", Date: "2025-01-08", Description: "Introduction aux lois de l'électricité",
			URL: "https://example.com/audio2.mp3", Transcription: "Transcription disponible"},
		{RecordingID: 4, Title: "Exercices Français - Grammaire", Subject: "Français", Class: "4ème A", Kind: database.RecordingFile,
			FileType: "docx", Size: "2.1 MB", Date: "2025-01-07", Description: "Fiche d'exercices sur les propositions subordonnées",
			URL: "https://example.com/francais.docx"},
		{RecordingID: 5, Title: "Cours Anglais - Present Perfect", Subject: "Anglais", Class: "5ème B", Kind: database.RecordingAudio,
			Duration: 1620, Size: "10.5 MB", Date: "2025-01-06", Description: "Explication du present perfect avec exemples",
			URL: "https://example.com/audio3.mp3"},
	}
}

func MockReports() []database.Report {
	return []database.Report{
		{ReportID: 1, Title: "Bulletin 1er Trimestre - 3ème A", Period: "Trimestre 1 2024-2025", Class: "3ème A", StudentsCount: 30,
			Status: database.ReportCompleted, CreatedDate: "2024-12-15", SentDate: "2024-12-20", DownloadCount: 45,
			QRCode: "https://example.com/qr/bulletin1", AverageGrade: 14.2, Template: "standard"},
		{ReportID: 2, Title: "Bulletin 1er Trimestre - 4ème B", Period: "Trimestre 1 2024-2025", Class: "4ème B", StudentsCount: 28,
			Status: database.ReportCompleted, CreatedDate: "2024-12-14", SentDate: "2024-12-19", DownloadCount: 38,
			QRCode: "https://example.com/qr/bulletin2", AverageGrade: 13.8, Template: "standard"},
		{ReportID: 3, Title: "Bulletin 2ème Trimestre - 3ème A", Period: "Trimestre 2 2024-2025", Class: "3ème A", StudentsCount: 30,
			Status: database.ReportGenerating, CreatedDate: "2025-01-10", Template: "detailed"},
		{ReportID: 4, Title: "Bulletin 1er Trimestre - 5ème A", Period: "Trimestre 1 2024-2025", Class: "5ème A", StudentsCount: 25,
			Status: database.ReportDraft, CreatedDate: "2024-12-10", AverageGrade: 15.1, Template: "minimal"},
	}
}

func MockSchedule() []database.ScheduleEntry {
	return []database.ScheduleEntry{
		{Day: "Lundi", Time: "08h00 - 09h00", Subject: "Mathématiques"},
		{Day: "Lundi", Time: "14h00 - 15h00", Subject: "Français"},
		{Day: "Mardi", Time: "10h00 - 11h00", Subject: "Histoire-Géo"},
		{Day: "Mercredi", Time: "09h00 - 10h00", Subject: "Sciences"},
		{Day: "Jeudi", Time: "15h00 - 16h00", Subject: "Anglais"},
	}
}
