package services

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportReportXLSXWritesSummaryAndRoster(t *testing.T) {
	report := MockReports()[0]
	students := MockStudents(1)
	path := filepath.Join(t.TempDir(), "bulletin.xlsx")

	require.NoError(t, ExportReportXLSX(report, students, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, report.Title, title)

	firstStudent, err := f.GetCellValue(sheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, students[0].LastName, firstStudent)

	lastRow := 6 + len(students)
	lastStatus, err := f.GetCellValue(sheet, "E"+strconv.Itoa(lastRow))
	require.NoError(t, err)
	assert.Equal(t, string(students[len(students)-1].Status), lastStatus)
}
