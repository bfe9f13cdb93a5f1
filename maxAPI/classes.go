package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cmanagement/collection"
)

const (
	classesTitle   = "📚 **Mes classes**"
	classesEmpty   = "Aucune classe ne correspond."
	classCreated   = "✅ Classe **%s** créée"
	loadingMessage = "Chargement…"
)

func (b *Bot) handleShowClasses(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.classes) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	b.answerWithKeyboard(ctx, callbackID, b.formatClasses(s), GetClassesKeyboard(b.MaxAPI, s.classes.Visible()))
}

func (b *Bot) renderClasses(ctx context.Context, userID int64, s *session) {
	b.sendKeyboard(ctx, GetClassesKeyboard(b.MaxAPI, s.classes.Visible()), userID, b.formatClasses(s))
}

func (b *Bot) formatClasses(s *session) string {
	visible := s.classes.Visible()

	var sb strings.Builder
	sb.WriteString(classesTitle + "\n")
	if s.classes.Search() != "" {
		fmt.Fprintf(&sb, "_Recherche : %s_\n", s.classes.Search())
	}
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(classesEmpty)
		return sb.String()
	}

	for _, c := range visible {
		fmt.Fprintf(&sb, "**%s** (%s) · %s\n", c.Name, c.Level, c.Subject)
		fmt.Fprintf(&sb, "   👥 %d/%d élèves · moyenne %.1f\n", c.StudentCount, c.Capacity, c.AverageGrade)
		if c.NextExam != "" {
			fmt.Fprintf(&sb, "   📝 Prochain examen : %s\n", c.NextExam)
		}
	}
	return sb.String()
}

// classDialog opens the class creation form as a field-per-message dialog.
// Returns nil when another form is already open.
func (b *Bot) classDialog(s *session) *dialog {
	if err := s.classes.BeginAdd(nil); err != nil {
		return nil
	}

	d := &dialog{
		prompts: []prompt{
			{key: "name", text: "Nom de la classe (ex. 6ème A) :"},
			{key: "level", text: "Niveau (ex. 6ème) :"},
			{key: "subject", text: "Matière :"},
			{key: "capacity", text: "Capacité (nombre d'élèves) :"},
		},
		set:    s.classes.SetField,
		cancel: s.classes.CancelEdit,
	}
	d.finish = func(ctx context.Context, userID int64) {
		created, err := s.classes.CommitAdd(ctx)
		if err != nil {
			var verr *collection.ValidationError
			if errors.As(err, &verr) {
				b.restartDialog(ctx, userID, s, d)
			}
			return
		}
		b.sendMessage(ctx, userID, fmt.Sprintf(classCreated, created.Name))
		b.renderClasses(ctx, userID, s)
	}
	return d
}

// ensureLoaded runs the screen's initial fetch if it has not resolved yet.
// Returns false when the screen is still not Ready (fetch failed or the
// context was cancelled); the alert has already been sent.
func ensureLoaded[T any](ctx context.Context, screen *collection.Screen[T]) bool {
	if screen.Phase() == collection.PhaseReady {
		return true
	}
	if err := screen.Load(ctx); err != nil {
		return false
	}
	return true
}
