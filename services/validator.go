package services

import (
	"encoding/csv"
	"fmt"
	"os"
)

type FileType string

const (
	FileTypeStudents FileType = "students"
	FileTypeClasses  FileType = "classes"
)

// ValidationError carries a message meant for the user, not the log.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var expectedHeaders = map[FileType][]string{
	FileTypeStudents: {"First_name", "Last_name", "Guardian_name", "Guardian_phone", "Guardian_email"},
	FileTypeClasses:  {"Name", "Level", "Subject", "Capacity"},
}

// ValidateCSVStructure checks the header row before anything is imported,
// so a wrong file is rejected with a readable message instead of a row
// error halfway through.
func ValidateCSVStructure(filePath string, expectedType FileType) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return &ValidationError{Message: "Erreur de lecture du fichier CSV. Vérifiez que le fichier a le bon format."}
	}

	if len(records) == 0 {
		return &ValidationError{Message: "Le fichier est vide. Envoyez un fichier contenant des données."}
	}

	if len(records) == 1 {
		return &ValidationError{Message: "Le fichier ne contient que l'en-tête. Ajoutez des données."}
	}

	expected, ok := expectedHeaders[expectedType]
	if !ok {
		return fmt.Errorf("unknown file type: %s", expectedType)
	}

	if !validateHeaders(records[0], expected) {
		return &ValidationError{
			Message: fmt.Sprintf("Structure de fichier invalide.\n\nColonnes attendues :\n%v\n\nColonnes reçues :\n%v\n\nEnvoyez un fichier au bon format.",
				expected, records[0]),
		}
	}

	return nil
}

func validateHeaders(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, exp := range expected {
		if actual[i] != exp {
			return false
		}
	}

	return true
}
