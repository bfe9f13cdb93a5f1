package database

import (
	"strconv"
	"strings"
	"time"

	"cmanagement/collection"
)

// This file is the per-entity configuration the generic collection layer is
// instantiated with: stores, queries and form specs. Screens differ only in
// this data, not in code.

// RequiredFields maps each entity kind to the form fields that must be
// filled before a commit is accepted.
var RequiredFields = map[string][]string{
	"classes":    {"name", "level", "capacity"},
	"students":   {"first_name", "last_name", "guardian_name"},
	"events":     {"title", "date"},
	"recordings": {"title", "subject", "class"},
	"reports":    {"title", "class"},
}

// FieldLabels maps raw form keys to the names shown in validation messages.
var FieldLabels = map[string]map[string]string{
	"classes": {
		"name": "nom", "level": "niveau", "subject": "matière", "capacity": "capacité",
	},
	"students": {
		"first_name": "prénom", "last_name": "nom", "guardian_name": "responsable",
		"guardian_phone": "téléphone du responsable", "guardian_email": "email du responsable",
	},
	"events": {
		"title": "titre", "date": "date", "time": "heure", "type": "type",
		"class": "classe", "location": "lieu", "duration": "durée",
	},
	"recordings": {
		"title": "titre", "subject": "matière", "class": "classe", "description": "description",
	},
	"reports": {
		"title": "titre", "class": "classe", "period": "période", "template": "modèle",
	},
}

func NewClassStore() *collection.Store[SchoolClass] {
	return collection.NewStore(
		func(c SchoolClass) int64 { return c.ClassID },
		func(c SchoolClass, id int64) SchoolClass { c.ClassID = id; return c },
	)
}

// ClassQuery searches name, level and subject, like the classes screen.
var ClassQuery = collection.Query[SchoolClass]{
	SearchFields: func(c SchoolClass) []string {
		return []string{c.Name, c.Level, c.Subject}
	},
}

func NewClassForm() *collection.Form[SchoolClass] {
	return collection.NewForm(collection.FormSpec[SchoolClass]{
		Required: RequiredFields["classes"],
		Labels:   FieldLabels["classes"],
		Defaults: map[string]string{"subject": "Toutes matières"},
		Build: func(v map[string]string) SchoolClass {
			capacity, _ := strconv.Atoi(v["capacity"])
			return SchoolClass{
				Name:     v["name"],
				Level:    v["level"],
				Subject:  v["subject"],
				Capacity: capacity,
				Color:    DefaultColor,
			}
		},
	})
}

func NewStudentStore() *collection.Store[Student] {
	return collection.NewStore(
		func(s Student) int64 { return s.StudentID },
		func(s Student, id int64) Student { s.StudentID = id; return s },
	)
}

// StudentQuery matches on the concatenated full name.
var StudentQuery = collection.Query[Student]{
	SearchFields: func(s Student) []string {
		return []string{s.FullName()}
	},
	FilterField: func(s Student) string { return string(s.Status) },
}

func NewStudentForm(classID int64) *collection.Form[Student] {
	return collection.NewForm(collection.FormSpec[Student]{
		Required: RequiredFields["students"],
		Labels:   FieldLabels["students"],
		Build: func(v map[string]string) Student {
			return Student{
				ClassID:       classID,
				FirstName:     v["first_name"],
				LastName:      v["last_name"],
				GuardianName:  v["guardian_name"],
				GuardianPhone: v["guardian_phone"],
				GuardianEmail: v["guardian_email"],
				Attendance:    100,
				Status:        StatusNew,
			}
		},
	})
}

func NewEventStore() *collection.Store[CalendarEvent] {
	return collection.NewStore(
		func(e CalendarEvent) int64 { return e.EventID },
		func(e CalendarEvent, id int64) CalendarEvent { e.EventID = id; return e },
	)
}

var EventQuery = collection.Query[CalendarEvent]{
	SearchFields: func(e CalendarEvent) []string {
		return []string{e.Title, e.Class, e.Subject}
	},
	FilterField: func(e CalendarEvent) string { return string(e.Type) },
}

func NewEventForm() *collection.Form[CalendarEvent] {
	return collection.NewForm(collection.FormSpec[CalendarEvent]{
		Required: RequiredFields["events"],
		Labels:   FieldLabels["events"],
		Defaults: map[string]string{"type": string(EventExam)},
		Build: func(v map[string]string) CalendarEvent {
			duration, _ := strconv.Atoi(v["duration"])
			return CalendarEvent{
				Title:       v["title"],
				Description: v["description"],
				Type:        EventType(v["type"]),
				Date:        v["date"],
				Time:        v["time"],
				Location:    v["location"],
				Class:       v["class"],
				Subject:     v["subject"],
				Duration:    duration,
			}
		},
	})
}

func NewRecordingStore() *collection.Store[Recording] {
	return collection.NewStore(
		func(r Recording) int64 { return r.RecordingID },
		func(r Recording, id int64) Recording { r.RecordingID = id; return r },
	)
}

var RecordingQuery = collection.Query[Recording]{
	SearchFields: func(r Recording) []string {
		return []string{r.Title, r.Subject, r.Class}
	},
	FilterField: func(r Recording) string { return string(r.Kind) },
}

// NewRecordingForm builds the metadata form; the media itself goes through
// the upload boundary and fills url/kind afterwards. Newest first.
func NewRecordingForm() *collection.Form[Recording] {
	return collection.NewForm(collection.FormSpec[Recording]{
		Required: RequiredFields["recordings"],
		Labels:   FieldLabels["recordings"],
		Defaults: map[string]string{"kind": string(RecordingAudio)},
		Prepend:  true,
		Build: func(v map[string]string) Recording {
			duration, _ := strconv.Atoi(v["duration"])
			return Recording{
				Title:       v["title"],
				Subject:     v["subject"],
				Class:       v["class"],
				Kind:        RecordingKind(v["kind"]),
				Duration:    duration,
				FileType:    v["file_type"],
				Size:        v["size"],
				Date:        time.Now().Format("2006-01-02"),
				Description: v["description"],
				URL:         v["url"],
			}
		},
	})
}

func NewReportStore() *collection.Store[Report] {
	return collection.NewStore(
		func(r Report) int64 { return r.ReportID },
		func(r Report, id int64) Report { r.ReportID = id; return r },
	)
}

var ReportQuery = collection.Query[Report]{
	SearchFields: func(r Report) []string {
		return []string{r.Title, r.Class}
	},
	FilterField: func(r Report) string { return PeriodKey(r.Period) },
}

// NewReportForm commits a report in the generating state; a background step
// completes it. Newest first.
func NewReportForm() *collection.Form[Report] {
	return collection.NewForm(collection.FormSpec[Report]{
		Required: RequiredFields["reports"],
		Labels:   FieldLabels["reports"],
		Defaults: map[string]string{"period": "Trimestre 1", "template": "standard"},
		Prepend:  true,
		Build: func(v map[string]string) Report {
			return Report{
				Title:       v["title"],
				Period:      v["period"],
				Class:       v["class"],
				Status:      ReportGenerating,
				CreatedDate: time.Now().Format("2006-01-02"),
				Template:    v["template"],
			}
		},
	})
}

// PeriodKey normalizes a period label like "Trimestre 1 2024-2025" to a
// filter key ("trimestre1").
func PeriodKey(period string) string {
	p := strings.ReplaceAll(strings.ToLower(period), " ", "")
	for _, key := range []string{"trimestre1", "trimestre2", "trimestre3"} {
		if strings.Contains(p, key) {
			return key
		}
	}
	return "other"
}
