package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"cmanagement/database"
)

// ExportReportXLSX writes a report card summary plus the class roster into
// a spreadsheet at path.
func ExportReportXLSX(report database.Report, students []database.Student, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", report.Title)
	f.SetCellValue(sheet, "A2", "Période")
	f.SetCellValue(sheet, "B2", report.Period)
	f.SetCellValue(sheet, "A3", "Classe")
	f.SetCellValue(sheet, "B3", report.Class)
	f.SetCellValue(sheet, "A4", "Moyenne générale")
	f.SetCellValue(sheet, "B4", report.AverageGrade)

	headers := []string{"Nom", "Prénom", "Moyenne", "Présence (%)", "Statut"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 6)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i, s := range students {
		row := strconv.Itoa(i + 7)
		f.SetCellValue(sheet, "A"+row, s.LastName)
		f.SetCellValue(sheet, "B"+row, s.FirstName)
		f.SetCellValue(sheet, "C"+row, s.AverageGrade)
		f.SetCellValue(sheet, "D"+row, s.Attendance)
		f.SetCellValue(sheet, "E"+row, string(s.Status))
	}

	return f.SaveAs(path)
}

// ExportClassesCSV writes the class list to w, in the format
// ImportClassesCSV reads back.
func ExportClassesCSV(classes []database.SchoolClass, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(expectedHeaders[FileTypeClasses]); err != nil {
		return err
	}

	for _, c := range classes {
		record := []string{c.Name, c.Level, c.Subject, strconv.Itoa(c.Capacity)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportStudentsCSV writes a roster to w, in the format ImportStudentsCSV
// reads back.
func ExportStudentsCSV(students []database.Student, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(expectedHeaders[FileTypeStudents]); err != nil {
		return err
	}

	for _, s := range students {
		record := []string{s.FirstName, s.LastName, s.GuardianName, s.GuardianPhone, s.GuardianEmail}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatDuration renders seconds as "39 min" the way the recording cards do.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", (seconds+59)/60)
}
