package maxAPI

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseClassesFileReadsExportBack(t *testing.T) {
	b := &Bot{}
	path := writeImportFile(t, "classes.csv",
		"Name,Level,Subject,Capacity\n"+
			"6ème A,6ème,Maths,30\n"+
			"5ème B,5ème,Français,28\n")

	classes, err := b.parseClassesFile(path)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "6ème A", classes[0].Name)
	assert.Equal(t, 30, classes[0].Capacity)
	assert.Equal(t, "Français", classes[1].Subject)
	// Ids are left for the store to assign on insert.
	assert.Zero(t, classes[0].ClassID)
}

func TestParseClassesFileRejectsWrongHeader(t *testing.T) {
	b := &Bot{}
	path := writeImportFile(t, "classes.csv",
		"First_name,Last_name,Guardian_name,Guardian_phone,Guardian_email\n"+
			"Emma,Martin,Claire Martin,0612345678,claire@example.com\n")

	_, err := b.parseClassesFile(path)
	assert.Error(t, err)
}

func TestParseClassesFileRejectsNonCSV(t *testing.T) {
	b := &Bot{}
	path := writeImportFile(t, "classes.xlsx", "not a spreadsheet")

	_, err := b.parseClassesFile(path)
	require.Error(t, err)
	assert.Equal(t, badClassFileMsg, err.Error())
}
