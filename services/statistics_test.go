package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmanagement/database"
)

func TestBuildDashboardSummarizesStores(t *testing.T) {
	classes := []database.SchoolClass{
		{ClassID: 1, Name: "6ème A", StudentCount: 20, AverageGrade: 12},
		{ClassID: 2, Name: "5ème B", StudentCount: 10, AverageGrade: 15},
	}
	events := []database.CalendarEvent{
		{EventID: 1, Title: "passé", Date: "2025-01-01"},
		{EventID: 2, Title: "demain", Date: "2025-01-11", Time: "09:00"},
		{EventID: 3, Title: "après-demain", Date: "2025-01-12", Time: "09:00"},
		{EventID: 4, Title: "plus tard", Date: "2025-01-13", Time: "09:00"},
		{EventID: 5, Title: "beaucoup plus tard", Date: "2025-02-01", Time: "09:00"},
	}
	recordings := []database.Recording{
		{RecordingID: 3, Title: "récent"},
		{RecordingID: 2, Title: "moins récent"},
		{RecordingID: 1, Title: "ancien"},
	}

	d := BuildDashboard(classes, events, recordings, "2025-01-10")

	assert.Equal(t, 2, d.TotalClasses)
	assert.Equal(t, 30, d.TotalStudents)
	assert.InDelta(t, 13.0, d.AverageGrade, 0.001, "head-count weighted mean of 12 and 15")

	require.Len(t, d.NextEvents, 3)
	assert.Equal(t, "demain", d.NextEvents[0].Title)

	require.Len(t, d.RecentRecordings, 2)
	assert.Equal(t, "récent", d.RecentRecordings[0].Title)
}

func TestRosterAverageSkipsUngradedClasses(t *testing.T) {
	classes := []database.SchoolClass{
		{StudentCount: 10, AverageGrade: 14},
		{StudentCount: 25, AverageGrade: 0}, // no grades yet
	}

	students, avg := rosterAverage(classes)
	assert.Equal(t, 35, students)
	assert.InDelta(t, 14.0, avg, 0.001)
}

func TestCompareClassesKeepsOrder(t *testing.T) {
	classes := MockClasses()
	bars := CompareClasses(classes)

	require.Len(t, bars, len(classes))
	for i, bar := range bars {
		assert.Equal(t, classes[i].Name, bar.Name)
		assert.Equal(t, classes[i].AverageGrade, bar.Average)
	}
}

func TestAnalyzeSubjectsDeltasSumAgainstGlobal(t *testing.T) {
	classes := []database.SchoolClass{
		{Subject: "Mathématiques", StudentCount: 10, AverageGrade: 16},
		{Subject: "Français", StudentCount: 10, AverageGrade: 12},
	}

	analysis := AnalyzeSubjects(classes)
	require.Len(t, analysis, 2)

	assert.Equal(t, "Mathématiques", analysis[0].Subject)
	assert.InDelta(t, 2.0, analysis[0].Delta, 0.001)
	assert.InDelta(t, -2.0, analysis[1].Delta, 0.001)
}

func TestBuildGlobalStatsCountsStatuses(t *testing.T) {
	classes := []database.SchoolClass{{StudentCount: 5, AverageGrade: 13}}
	students := MockStudents(1)

	g := BuildGlobalStats(classes, students)

	assert.Equal(t, 2, g.TopPerformers)
	assert.Equal(t, 1, g.NeedSupport)
	assert.InDelta(t, 90.0, g.AttendanceRate, 0.001, "(96+88+82+94+90)/5")
}
