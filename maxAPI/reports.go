package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/collection"
	"cmanagement/database"
	"cmanagement/services"
)

const (
	reportsTitle     = "📋 **Bulletins**"
	reportsEmpty     = "Aucun bulletin ne correspond."
	reportQueued     = "⏳ Bulletin **%s** en cours de génération…"
	reportReadyMsg   = "✅ Bulletin **%s** prêt !\n🔗 %s"
	reportFailedMsg  = "❌ La génération du bulletin **%s** a échoué. Supprimez-le et réessayez."
	generatedAverage = 14.5
)

var reportStatusLabels = map[database.ReportStatus]string{
	database.ReportDraft:      "📝 Brouillon",
	database.ReportGenerating: "⏳ Génération…",
	database.ReportCompleted:  "✅ Terminé",
	database.ReportError:      "❌ Erreur",
}

func (b *Bot) handleShowReports(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.reports) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	b.answerWithKeyboard(ctx, callbackID, b.formatReports(s), b.reportsKeyboard(s))
}

func (b *Bot) renderReports(ctx context.Context, userID int64, s *session) {
	b.sendKeyboard(ctx, b.reportsKeyboard(s), userID, b.formatReports(s))
}

func (b *Bot) reportsKeyboard(s *session) *maxbot.Keyboard {
	keyboard := GetFilterKeyboard(b.MaxAPI, kindReport, []string{"trimestre1", "trimestre2", "trimestre3"})
	for _, r := range s.reports.Visible() {
		row := keyboard.AddRow()
		if r.Status == database.ReportCompleted {
			row.AddCallback("⬇️ "+r.Title, schemes.DEFAULT, fmt.Sprintf(payloadDownload, r.ReportID))
		}
		row.AddCallback("🗑 "+r.Title, schemes.NEGATIVE, fmt.Sprintf(payloadDelete, kindReport, r.ReportID))
	}
	return keyboard
}

// handleDownloadReport writes the report card spreadsheet and counts the
// download.
func (b *Bot) handleDownloadReport(ctx context.Context, userID int64, callbackID string, s *session, reportID int64) {
	report, ok := s.reports.Store().Get(reportID)
	if !ok {
		b.answerCallbackWithNotification(ctx, callbackID, "Introuvable.")
		return
	}
	if report.Status != database.ReportCompleted {
		b.answerCallbackWithNotification(ctx, callbackID, "Ce bulletin n'est pas encore prêt.")
		return
	}

	var roster []database.Student
	if s.students != nil {
		roster = s.students.Store().Items()
	}

	path := filepath.Join(exportDir, fmt.Sprintf("bulletin_%d.xlsx", reportID))
	err := os.MkdirAll(exportDir, 0755)
	if err == nil {
		err = services.ExportReportXLSX(report, roster, path)
	}
	if err != nil {
		b.logger.Errorf("Report %d export failed: %v", reportID, err)
		b.answerCallbackWithNotification(ctx, callbackID, exportFailedMsg)
		return
	}

	s.reports.Store().Update(reportID, func(r database.Report) database.Report {
		r.DownloadCount++
		return r
	})

	b.answerCallbackWithNotification(ctx, callbackID, fmt.Sprintf(exportDoneMsg, path))
	b.renderReports(ctx, userID, s)
}

func (b *Bot) formatReports(s *session) string {
	visible := s.reports.Visible()

	var sb strings.Builder
	sb.WriteString(reportsTitle + "\n")
	if s.reports.Search() != "" {
		fmt.Fprintf(&sb, "_Recherche : %s_\n", s.reports.Search())
	}
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(reportsEmpty)
		return sb.String()
	}

	for _, r := range visible {
		fmt.Fprintf(&sb, "**%s** · %s · %s\n", r.Title, r.Class, r.Period)
		fmt.Fprintf(&sb, "   %s · créé le %s\n", reportStatusLabels[r.Status], r.CreatedDate)
		if r.Status == database.ReportCompleted {
			fmt.Fprintf(&sb, "   moyenne %.1f · %d téléchargements\n", r.AverageGrade, r.DownloadCount)
			if r.QRCode != "" {
				fmt.Fprintf(&sb, "   🔗 %s\n", r.QRCode)
			}
		}
	}
	return sb.String()
}

// reportDialog creates a report in the generating state and schedules its
// completion.
func (b *Bot) reportDialog(s *session) *dialog {
	if err := s.reports.BeginAdd(nil); err != nil {
		return nil
	}

	d := &dialog{
		prompts: []prompt{
			{key: "title", text: "Titre du bulletin :"},
			{key: "class", text: "Classe :"},
			{key: "period", text: "Période (ex. Trimestre 1 2024-2025) :"},
			{key: "template", text: "Modèle (standard, détaillé) :"},
		},
		set:    s.reports.SetField,
		cancel: s.reports.CancelEdit,
	}
	d.finish = func(ctx context.Context, userID int64) {
		created, err := s.reports.CommitAdd(ctx)
		if err != nil {
			var verr *collection.ValidationError
			if errors.As(err, &verr) {
				b.restartDialog(ctx, userID, s, d)
			}
			return
		}
		b.sendMessage(ctx, userID, fmt.Sprintf(reportQueued, created.Title))
		b.renderReports(ctx, userID, s)

		go b.generateReport(ctx, userID, s, created.ReportID)
	}
	return d
}

// generateReport simulates the backend build of a report. An application
// shutdown mid-flight leaves the report generating; nothing is mutated
// after the context is cancelled.
func (b *Bot) generateReport(ctx context.Context, userID int64, s *session, reportID int64) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(b.generateDelay):
	}

	status := b.finishReport(ctx, s, reportID)

	r, ok := s.reports.Store().Get(reportID)
	if !ok {
		return
	}

	msg := fmt.Sprintf(reportReadyMsg, r.Title, r.QRCode)
	if status == database.ReportError {
		msg = fmt.Sprintf(reportFailedMsg, r.Title)
	}
	if err := b.sendMessage(ctx, userID, msg); err != nil {
		b.logger.Errorf("Failed to notify report %d outcome: %v", reportID, err)
	}
}

// finishReport settles a generating report. The backend persists the
// completion before the local card shows it; a persistence failure moves
// the report to the error state instead.
func (b *Bot) finishReport(ctx context.Context, s *session, reportID int64) database.ReportStatus {
	qrCode := fmt.Sprintf("https://example.com/qr/bulletin%d", reportID)

	status := database.ReportCompleted
	if b.sources.CompleteReport != nil {
		if err := b.sources.CompleteReport(ctx, reportID, database.ReportCompleted, qrCode, generatedAverage); err != nil {
			b.logger.Errorf("Failed to persist report %d completion: %v", reportID, err)
			status = database.ReportError
		}
	}

	s.reports.Store().Update(reportID, func(r database.Report) database.Report {
		r.Status = status
		if status == database.ReportCompleted {
			r.QRCode = qrCode
			r.AverageGrade = generatedAverage
		}
		return r
	})
	return status
}
