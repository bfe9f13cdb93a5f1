package services

import (
	"cmanagement/database"
)

// Dashboard is the home screen summary, computed from the loaded stores.
type Dashboard struct {
	TotalStudents    int
	TotalClasses     int
	AverageGrade     float64
	NextEvents       []database.CalendarEvent
	RecentRecordings []database.Recording
}

func BuildDashboard(classes []database.SchoolClass, events []database.CalendarEvent, recordings []database.Recording, today string) Dashboard {
	d := Dashboard{
		TotalClasses: len(classes),
		NextEvents:   database.UpcomingEvents(events, today, 3),
	}

	d.TotalStudents, d.AverageGrade = rosterAverage(classes)

	limit := 2
	if len(recordings) < limit {
		limit = len(recordings)
	}
	d.RecentRecordings = recordings[:limit]

	return d
}

// rosterAverage weights each class average by its head count; classes with
// no grades yet are left out of the mean.
func rosterAverage(classes []database.SchoolClass) (students int, average float64) {
	var graded int
	var sum float64
	for _, c := range classes {
		students += c.StudentCount
		if c.AverageGrade > 0 && c.StudentCount > 0 {
			sum += c.AverageGrade * float64(c.StudentCount)
			graded += c.StudentCount
		}
	}
	if graded > 0 {
		average = sum / float64(graded)
	}
	return students, average
}

// ClassComparison is one bar of the statistics screen.
type ClassComparison struct {
	Name     string
	Average  float64
	Students int
	Color    string
}

func CompareClasses(classes []database.SchoolClass) []ClassComparison {
	out := make([]ClassComparison, 0, len(classes))
	for _, c := range classes {
		out = append(out, ClassComparison{
			Name:     c.Name,
			Average:  c.AverageGrade,
			Students: c.StudentCount,
			Color:    c.Color,
		})
	}
	return out
}

// SubjectAnalysis aggregates class averages per subject and positions each
// subject against the school-wide mean.
type SubjectAnalysis struct {
	Subject string
	Average float64
	Delta   float64 // versus the global average
}

func AnalyzeSubjects(classes []database.SchoolClass) []SubjectAnalysis {
	_, global := rosterAverage(classes)

	type acc struct {
		sum   float64
		count int
	}
	bySubject := make(map[string]*acc)
	var order []string
	for _, c := range classes {
		if c.AverageGrade <= 0 {
			continue
		}
		a, ok := bySubject[c.Subject]
		if !ok {
			a = &acc{}
			bySubject[c.Subject] = a
			order = append(order, c.Subject)
		}
		a.sum += c.AverageGrade
		a.count++
	}

	out := make([]SubjectAnalysis, 0, len(order))
	for _, subject := range order {
		a := bySubject[subject]
		avg := a.sum / float64(a.count)
		out = append(out, SubjectAnalysis{
			Subject: subject,
			Average: avg,
			Delta:   avg - global,
		})
	}
	return out
}

// GlobalStats is the headline block of the statistics screen.
type GlobalStats struct {
	TotalStudents  int
	AverageGrade   float64
	AttendanceRate float64
	TopPerformers  int
	NeedSupport    int
}

func BuildGlobalStats(classes []database.SchoolClass, students []database.Student) GlobalStats {
	g := GlobalStats{}
	g.TotalStudents, g.AverageGrade = rosterAverage(classes)

	if len(students) > 0 {
		var attendance int
		for _, s := range students {
			attendance += s.Attendance
			switch s.Status {
			case database.StatusExcellent:
				g.TopPerformers++
			case database.StatusNeedsAttention:
				g.NeedSupport++
			}
		}
		g.AttendanceRate = float64(attendance) / float64(len(students))
	}

	return g
}
