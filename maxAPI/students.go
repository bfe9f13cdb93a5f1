package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/collection"
	"cmanagement/database"
)

const (
	rosterEmpty    = "Aucun élève ne correspond."
	studentCreated = "✅ Élève **%s** ajouté"
)

var statusLabels = map[database.StudentStatus]string{
	database.StatusExcellent:      "🌟 Excellent",
	database.StatusGood:           "👍 Bon niveau",
	database.StatusNeedsAttention: "⚠️ À suivre",
	database.StatusNew:            "🆕 Nouveau",
}

func (b *Bot) handleOpenClass(ctx context.Context, userID int64, callbackID string, classID int64) {
	s := b.openClass(userID, classID)

	if !ensureLoaded(ctx, s.students) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}
	b.syncStudentCount(s)

	b.answerWithKeyboard(ctx, callbackID, b.formatClassDetail(s), b.classDetailKeyboard(s))
}

func (b *Bot) renderClassDetail(ctx context.Context, userID int64, s *session) {
	if s.students == nil {
		return
	}
	b.sendKeyboard(ctx, b.classDetailKeyboard(s), userID, b.formatClassDetail(s))
}

func (b *Bot) classDetailKeyboard(s *session) *maxbot.Keyboard {
	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()

	row := keyboard.AddRow()
	row.AddCallback("Tous", schemes.DEFAULT, fmt.Sprintf(payloadFilter, kindStudent, "all"))
	for _, status := range []database.StudentStatus{database.StatusExcellent, database.StatusGood, database.StatusNeedsAttention, database.StatusNew} {
		row.AddCallback(string(status), schemes.DEFAULT, fmt.Sprintf(payloadFilter, kindStudent, string(status)))
	}

	for _, st := range s.students.Visible() {
		keyboard.AddRow().AddCallback("🗑 "+st.FullName(), schemes.NEGATIVE, fmt.Sprintf(payloadDelete, kindStudent, st.StudentID))
	}

	keyboard.AddRow().
		AddCallback(btnAdd, schemes.DEFAULT, fmt.Sprintf(payloadAdd, kindStudent)).
		AddCallback(btnSearch, schemes.DEFAULT, fmt.Sprintf(payloadSearch, kindStudent))
	keyboard.AddRow().AddCallback(btnImportRoster, schemes.DEFAULT, payloadImportRoster)
	keyboard.AddRow().
		AddCallback(btnClasses, schemes.DEFAULT, payloadClasses).
		AddCallback(btnBackToMenu, schemes.DEFAULT, payloadMenu)
	return keyboard
}

func (b *Bot) formatClassDetail(s *session) string {
	var sb strings.Builder

	if c, ok := s.classes.Store().Get(s.classID); ok {
		fmt.Fprintf(&sb, "**%s** · %s · %s\n", c.Name, c.Level, c.Subject)
		fmt.Fprintf(&sb, "👥 %d/%d élèves · moyenne %.1f\n\n", c.StudentCount, c.Capacity, c.AverageGrade)
	}

	sb.WriteString("**Élèves**\n")
	visible := s.students.Visible()
	if s.students.Search() != "" {
		fmt.Fprintf(&sb, "_Recherche : %s_\n", s.students.Search())
	}
	if len(visible) == 0 {
		sb.WriteString(rosterEmpty + "\n")
	}
	for _, st := range visible {
		fmt.Fprintf(&sb, "• **%s** · %s\n", st.FullName(), statusLabels[st.Status])
		fmt.Fprintf(&sb, "   moyenne %.1f · présence %d%%\n", st.AverageGrade, st.Attendance)
		if st.GuardianName != "" {
			fmt.Fprintf(&sb, "   👪 %s · %s\n", st.GuardianName, st.GuardianPhone)
		}
	}

	if b.sources.Schedule != nil {
		sb.WriteString("\n**Emploi du temps**\n")
		for _, entry := range b.sources.Schedule() {
			fmt.Fprintf(&sb, "%s %s · %s\n", entry.Day, entry.Time, entry.Subject)
		}
	}

	return sb.String()
}

func (b *Bot) studentDialog(s *session) *dialog {
	if s.students == nil {
		return nil
	}
	if err := s.students.BeginAdd(nil); err != nil {
		return nil
	}

	d := &dialog{
		prompts: []prompt{
			{key: "first_name", text: "Prénom de l'élève :"},
			{key: "last_name", text: "Nom de l'élève :"},
			{key: "guardian_name", text: "Nom du responsable légal :"},
			{key: "guardian_phone", text: "Téléphone du responsable :"},
			{key: "guardian_email", text: "Email du responsable :"},
		},
		set:    s.students.SetField,
		cancel: s.students.CancelEdit,
	}
	d.finish = func(ctx context.Context, userID int64) {
		created, err := s.students.CommitAdd(ctx)
		if err != nil {
			var verr *collection.ValidationError
			if errors.As(err, &verr) {
				b.restartDialog(ctx, userID, s, d)
			}
			return
		}
		b.syncStudentCount(s)
		b.sendMessage(ctx, userID, fmt.Sprintf(studentCreated, created.FullName()))
		b.renderClassDetail(ctx, userID, s)
	}
	return d
}

// syncStudentCount refreshes the cached head count on the class card from
// the loaded roster.
func (b *Bot) syncStudentCount(s *session) {
	if s.students == nil || s.classID == 0 {
		return
	}
	count := s.students.Store().Len()
	s.classes.Store().Update(s.classID, func(c database.SchoolClass) database.SchoolClass {
		c.StudentCount = count
		return c
	})
}
