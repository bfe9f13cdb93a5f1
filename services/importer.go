package services

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"cmanagement/database"
)

// ImportStudentsCSV reads a validated roster file and returns the students
// to feed into a class store. Ids are left zero; the store assigns them.
func ImportStudentsCSV(filePath string, classID int64) ([]database.Student, error) {
	records, err := readCSV(filePath)
	if err != nil {
		return nil, err
	}

	students := make([]database.Student, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		students = append(students, database.Student{
			ClassID:       classID,
			FirstName:     record[0],
			LastName:      record[1],
			GuardianName:  record[2],
			GuardianPhone: record[3],
			GuardianEmail: record[4],
			Attendance:    100,
			Status:        database.StatusNew,
		})
	}

	return students, nil
}

// ImportClassesCSV reads a class list export back in.
func ImportClassesCSV(filePath string) ([]database.SchoolClass, error) {
	records, err := readCSV(filePath)
	if err != nil {
		return nil, err
	}

	classes := make([]database.SchoolClass, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		capacity, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, &ValidationError{Message: "La colonne Capacity doit contenir un nombre entier."}
		}

		classes = append(classes, database.SchoolClass{
			Name:     record[0],
			Level:    record[1],
			Subject:  record[2],
			Capacity: capacity,
			Color:    database.DefaultColor,
		})
	}

	return classes, nil
}

// ImportStudentsXLSX reads a roster from a spreadsheet stream: column A
// first name, column B last name, column C guardian name, first row is the
// header. Rows missing a name are skipped, not fatal.
func ImportStudentsXLSX(r io.Reader, classID int64) ([]database.Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ValidationError{Message: "Impossible d'ouvrir le fichier Excel."}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var students []database.Student
	for i, row := range rows {
		if i == 0 {
			continue
		}

		var first, last, guardian string
		if len(row) > 0 {
			first = row[0]
		}
		if len(row) > 1 {
			last = row[1]
		}
		if len(row) > 2 {
			guardian = row[2]
		}

		if first == "" || last == "" {
			continue
		}

		students = append(students, database.Student{
			ClassID:      classID,
			FirstName:    first,
			LastName:     last,
			GuardianName: guardian,
			Attendance:   100,
			Status:       database.StatusNew,
		})
	}

	return students, nil
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	return reader.ReadAll()
}
