package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/database"
	"cmanagement/services"
)

const (
	sendRosterFileMsg  = "Envoyez le fichier des élèves (.csv ou .xlsx)."
	sendClassesFileMsg = "Envoyez le fichier des classes (.csv)."
	rosterImportedMsg  = "✅ %d élève(s) importé(s) !"
	classesImportedMsg = "✅ %d classe(s) importée(s) !"
	importErrorMsg     = "❌ Erreur d'import :\n\n%s"
	badFileTypeMsg     = "Format non pris en charge. Envoyez un fichier .csv ou .xlsx."
	badClassFileMsg    = "Format non pris en charge. Envoyez un fichier .csv."

	importKindRoster  = "roster"
	importKindClasses = "classes"
)

func (b *Bot) handleImportRoster(ctx context.Context, userID int64, callbackID string, s *session) {
	if s.students == nil {
		b.answerCallbackWithNotification(ctx, callbackID, openClassFirst)
		return
	}

	b.mu.Lock()
	s.pendingImport = importKindRoster
	b.mu.Unlock()

	b.answerCallbackWithNotification(ctx, callbackID, "Import d'élèves")
	b.sendMessage(ctx, userID, sendRosterFileMsg)
}

func (b *Bot) handleImportClasses(ctx context.Context, userID int64, callbackID string, s *session) {
	b.mu.Lock()
	s.pendingImport = importKindClasses
	b.mu.Unlock()

	b.answerCallbackWithNotification(ctx, callbackID, "Import de classes")
	b.sendMessage(ctx, userID, sendClassesFileMsg)
}

// handleImportedFile routes a received file to whichever import was
// requested.
func (b *Bot) handleImportedFile(ctx context.Context, userID int64, s *session, kind string, fileAtt *schemes.FileAttachment) {
	b.mu.Lock()
	s.pendingImport = ""
	b.mu.Unlock()

	switch kind {
	case importKindRoster:
		b.handleRosterFile(ctx, userID, s, fileAtt)
	case importKindClasses:
		b.handleClassesFile(ctx, userID, s, fileAtt)
	}
}

// handleRosterFile downloads the attachment, parses it and merges the rows
// into the open roster.
func (b *Bot) handleRosterFile(ctx context.Context, userID int64, s *session, fileAtt *schemes.FileAttachment) {
	filePath, err := b.downloadFile(ctx, fileAtt)
	if err != nil {
		b.logger.Errorf("Failed to download roster file %s: %v", fileAtt.Filename, err)
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrorMsg, err.Error()))
		return
	}
	defer os.Remove(filePath)

	students, err := b.parseRosterFile(filePath, s.classID)
	if err != nil {
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrorMsg, err.Error()))
		return
	}

	for _, st := range students {
		inserted := s.students.Store().Insert(st)
		if _, cerr := b.sources.Students(s.classID).Create(ctx, inserted); cerr != nil {
			b.logger.Errorf("Failed to push imported student %s: %v", inserted.FullName(), cerr)
		}
	}
	b.syncStudentCount(s)

	b.sendMessage(ctx, userID, fmt.Sprintf(rosterImportedMsg, len(students)))
	b.renderClassDetail(ctx, userID, s)
}

// handleClassesFile reads a class list export back in, the counterpart of
// the CSV export in the settings screen.
func (b *Bot) handleClassesFile(ctx context.Context, userID int64, s *session, fileAtt *schemes.FileAttachment) {
	filePath, err := b.downloadFile(ctx, fileAtt)
	if err != nil {
		b.logger.Errorf("Failed to download classes file %s: %v", fileAtt.Filename, err)
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrorMsg, err.Error()))
		return
	}
	defer os.Remove(filePath)

	classes, err := b.parseClassesFile(filePath)
	if err != nil {
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrorMsg, err.Error()))
		return
	}

	for _, c := range classes {
		inserted := s.classes.Store().Insert(c)
		if _, cerr := b.sources.Classes.Create(ctx, inserted); cerr != nil {
			b.logger.Errorf("Failed to push imported class %s: %v", inserted.Name, cerr)
		}
	}

	b.sendMessage(ctx, userID, fmt.Sprintf(classesImportedMsg, len(classes)))
	b.renderClasses(ctx, userID, s)
}

func (b *Bot) parseRosterFile(filePath string, classID int64) ([]database.Student, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		if err := services.ValidateCSVStructure(filePath, services.FileTypeStudents); err != nil {
			return nil, err
		}
		return services.ImportStudentsCSV(filePath, classID)
	case ".xlsx":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return services.ImportStudentsXLSX(f, classID)
	default:
		return nil, errors.New(badFileTypeMsg)
	}
}

func (b *Bot) parseClassesFile(filePath string) ([]database.SchoolClass, error) {
	if strings.ToLower(filepath.Ext(filePath)) != ".csv" {
		return nil, errors.New(badClassFileMsg)
	}
	if err := services.ValidateCSVStructure(filePath, services.FileTypeClasses); err != nil {
		return nil, err
	}
	return services.ImportClassesCSV(filePath)
}

func (b *Bot) downloadFile(ctx context.Context, fileAtt *schemes.FileAttachment) (string, error) {
	fileURL := fileAtt.Payload.Url
	b.logger.Debugf("Downloading file: %s from %s", fileAtt.Filename, fileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.logger.Errorf("Bad HTTP status when downloading file: %s", resp.Status)
		return "", fmt.Errorf("failed to download file: status %s", resp.Status)
	}

	tmpDir := "./tmp"
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(tmpDir, fileAtt.Filename)
	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}

	b.logger.Infof("File saved to: %s", filePath)
	return filePath, nil
}
