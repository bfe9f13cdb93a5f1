package maxAPI

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cmanagement/database"
	"cmanagement/services"
)

const (
	dashboardTitle = "🏠 **Tableau de bord**"
	statsTitle     = "📊 **Statistiques**"
)

func (b *Bot) handleDashboard(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.classes) || !ensureLoaded(ctx, s.events) || !ensureLoaded(ctx, s.recordings) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	today := time.Now().Format("2006-01-02")
	d := services.BuildDashboard(s.classes.Store().Items(), s.events.Store().Items(), s.recordings.Store().Items(), today)

	var sb strings.Builder
	sb.WriteString(dashboardTitle + "\n\n")
	fmt.Fprintf(&sb, "👥 %d élèves · 📚 %d classes\n", d.TotalStudents, d.TotalClasses)
	fmt.Fprintf(&sb, "📈 Moyenne générale : %.1f\n\n", d.AverageGrade)

	if len(d.NextEvents) > 0 {
		sb.WriteString("**Prochains événements**\n")
		for _, e := range d.NextEvents {
			fmt.Fprintf(&sb, "• %s %s · %s à %s\n", eventTypeLabels[e.Type], e.Title, e.Date, e.Time)
		}
		sb.WriteString("\n")
	}

	if len(d.RecentRecordings) > 0 {
		sb.WriteString("**Derniers enregistrements**\n")
		for _, r := range d.RecentRecordings {
			fmt.Fprintf(&sb, "• %s · %s\n", r.Title, r.Date)
		}
	}

	b.answerWithKeyboard(ctx, callbackID, sb.String(), GetMainMenuKeyboard(b.MaxAPI))
}

// handleStatistics renders the school-wide block, the per-class comparison
// and the per-subject analysis. Student-level counters cover the roster
// currently open; the other blocks come from the class cards.
func (b *Bot) handleStatistics(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.classes) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	var students []database.Student
	if s.students != nil {
		students = s.students.Store().Items()
	}

	classes := s.classes.Store().Items()
	g := services.BuildGlobalStats(classes, students)

	var sb strings.Builder
	sb.WriteString(statsTitle + "\n\n")
	fmt.Fprintf(&sb, "👥 %d élèves · moyenne générale %.1f\n", g.TotalStudents, g.AverageGrade)
	if len(students) > 0 {
		fmt.Fprintf(&sb, "📅 Présence moyenne : %.0f%%\n", g.AttendanceRate)
		fmt.Fprintf(&sb, "🌟 %d excellents · ⚠️ %d à suivre\n", g.TopPerformers, g.NeedSupport)
	}
	sb.WriteString("\n**Par classe**\n")
	for _, c := range services.CompareClasses(classes) {
		fmt.Fprintf(&sb, "• %s : %.1f (%d élèves)\n", c.Name, c.Average, c.Students)
	}

	if analysis := services.AnalyzeSubjects(classes); len(analysis) > 0 {
		sb.WriteString("\n**Par matière**\n")
		for _, a := range analysis {
			sign := "+"
			if a.Delta < 0 {
				sign = ""
			}
			fmt.Fprintf(&sb, "• %s : %.1f (%s%.1f vs moyenne)\n", a.Subject, a.Average, sign, a.Delta)
		}
	}

	b.answerWithKeyboard(ctx, callbackID, sb.String(), GetMainMenuKeyboard(b.MaxAPI))
}
