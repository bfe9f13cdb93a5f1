package maxAPI

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmanagement/collection"
	"cmanagement/database"
	"cmanagement/logger"
)

func newReportsSession() *session {
	return &session{
		reports: collection.NewScreen(
			&stubSource[database.Report]{},
			database.NewReportStore(),
			database.ReportQuery,
			database.NewReportForm(),
			silentNotifier{},
		),
	}
}

func TestFinishReportCompletesAndPersists(t *testing.T) {
	s := newReportsSession()
	r := s.reports.Store().Insert(database.Report{Title: "Bulletin T1", Status: database.ReportGenerating})

	var persisted database.ReportStatus
	b := &Bot{
		logger: logger.GetInstance(),
		sources: Sources{
			CompleteReport: func(_ context.Context, id int64, status database.ReportStatus, qrCode string, averageGrade float64) error {
				persisted = status
				return nil
			},
		},
	}

	status := b.finishReport(context.Background(), s, r.ReportID)
	assert.Equal(t, database.ReportCompleted, status)
	assert.Equal(t, database.ReportCompleted, persisted)

	got, ok := s.reports.Store().Get(r.ReportID)
	require.True(t, ok)
	assert.Equal(t, database.ReportCompleted, got.Status)
	assert.Contains(t, got.QRCode, "https://example.com/qr/bulletin")
	assert.Equal(t, generatedAverage, got.AverageGrade)
}

func TestFinishReportPersistenceFailureMarksError(t *testing.T) {
	s := newReportsSession()
	r := s.reports.Store().Insert(database.Report{Title: "Bulletin T1", Status: database.ReportGenerating})

	b := &Bot{
		logger: logger.GetInstance(),
		sources: Sources{
			CompleteReport: func(context.Context, int64, database.ReportStatus, string, float64) error {
				return errors.New("backend unavailable")
			},
		},
	}

	status := b.finishReport(context.Background(), s, r.ReportID)
	assert.Equal(t, database.ReportError, status)

	// The card must not claim a completion the backend never recorded.
	got, ok := s.reports.Store().Get(r.ReportID)
	require.True(t, ok)
	assert.Equal(t, database.ReportError, got.Status)
	assert.Empty(t, got.QRCode)
	assert.Zero(t, got.AverageGrade)
}

func TestFinishReportWithoutBackendCompletesLocally(t *testing.T) {
	s := newReportsSession()
	r := s.reports.Store().Insert(database.Report{Title: "Bulletin T1", Status: database.ReportGenerating})

	b := &Bot{logger: logger.GetInstance()}

	status := b.finishReport(context.Background(), s, r.ReportID)
	assert.Equal(t, database.ReportCompleted, status)

	got, _ := s.reports.Store().Get(r.ReportID)
	assert.Equal(t, database.ReportCompleted, got.Status)
}
