package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKeyNormalizesLabels(t *testing.T) {
	assert.Equal(t, "trimestre1", PeriodKey("Trimestre 1"))
	assert.Equal(t, "trimestre1", PeriodKey("Trimestre 1 2024-2025"))
	assert.Equal(t, "trimestre2", PeriodKey("trimestre 2"))
	assert.Equal(t, "trimestre3", PeriodKey("TRIMESTRE 3"))
	assert.Equal(t, "other", PeriodKey("Année complète"))
}

func TestClassFormDefaultsAndBuild(t *testing.T) {
	form := NewClassForm()
	store := NewClassStore()

	form.Start(nil)
	form.Set("name", "6ème A")
	form.Set("level", "6ème")
	form.Set("capacity", "30")

	created, err := form.Commit(store)
	require.NoError(t, err)

	assert.Equal(t, "Toutes matières", created.Subject, "subject falls back to its default")
	assert.Equal(t, 30, created.Capacity)
	assert.Equal(t, DefaultColor, created.Color)
	assert.NotZero(t, created.ClassID)
}

func TestStudentFormBindsClassAndSeedsStatus(t *testing.T) {
	form := NewStudentForm(42)
	store := NewStudentStore()

	form.Start(nil)
	form.Set("first_name", "Emma")
	form.Set("last_name", "Martin")
	form.Set("guardian_name", "Sophie Martin")

	created, err := form.Commit(store)
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.ClassID)
	assert.Equal(t, StatusNew, created.Status)
	assert.Equal(t, 100, created.Attendance)
	assert.Equal(t, "Emma Martin", created.FullName())
}

func TestStudentFormRequiresGuardian(t *testing.T) {
	form := NewStudentForm(1)
	store := NewStudentStore()

	form.Start(nil)
	form.Set("first_name", "Lucas")
	form.Set("last_name", "Dubois")

	_, err := form.Commit(store)
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestEventFormDefaultsToExam(t *testing.T) {
	form := NewEventForm()
	store := NewEventStore()

	form.Start(nil)
	form.Set("title", "Contrôle d'anglais")
	form.Set("date", "2025-03-10")

	created, err := form.Commit(store)
	require.NoError(t, err)
	assert.Equal(t, EventExam, created.Type)
}

func TestReportFormStartsGenerating(t *testing.T) {
	form := NewReportForm()
	store := NewReportStore()
	store.Insert(Report{Title: "ancien", Period: "Trimestre 1", Class: "6ème A", Status: ReportCompleted})

	form.Start(nil)
	form.Set("title", "Bulletin T2")
	form.Set("class", "6ème A")
	form.Set("period", "Trimestre 2")

	created, err := form.Commit(store)
	require.NoError(t, err)

	assert.Equal(t, ReportGenerating, created.Status)
	assert.NotEmpty(t, created.CreatedDate)

	items := store.Items()
	assert.Equal(t, created.ReportID, items[0].ReportID, "new reports go to the head")
}

func TestRecordingQueryFiltersByKind(t *testing.T) {
	recordings := []Recording{
		{RecordingID: 1, Title: "Cours audio", Kind: RecordingAudio},
		{RecordingID: 2, Title: "Polycopié", Kind: RecordingFile},
	}

	got := RecordingQuery.Apply(recordings, "", string(RecordingAudio))
	require.Len(t, got, 1)
	assert.Equal(t, "Cours audio", got[0].Title)
}

func TestFormLabelsStayReadable(t *testing.T) {
	form := NewStudentForm(1)
	assert.Equal(t, "prénom", form.Label("first_name"))
	assert.Equal(t, "responsable", form.Label("guardian_name"))
	// Unlabeled keys fall back to the raw key.
	assert.Equal(t, "unknown_key", form.Label("unknown_key"))

	assert.Equal(t, "capacité", NewClassForm().Label("capacity"))
	assert.Equal(t, "période", NewReportForm().Label("period"))
}
