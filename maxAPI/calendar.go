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
	calendarTitle = "📅 **Calendrier**"
	calendarEmpty = "Aucun événement ne correspond."
	eventCreated  = "✅ Événement **%s** ajouté"
)

var eventTypeLabels = map[database.EventType]string{
	database.EventExam:     "📝 Examen",
	database.EventMeeting:  "🤝 Réunion",
	database.EventHomework: "📖 Devoir",
	database.EventVacation: "🏖 Vacances",
	database.EventOther:    "📌 Autre",
}

func (b *Bot) handleShowCalendar(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.events) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	b.answerWithKeyboard(ctx, callbackID, b.formatCalendar(s), b.calendarKeyboard(s))
}

func (b *Bot) renderCalendar(ctx context.Context, userID int64, s *session) {
	b.sendKeyboard(ctx, b.calendarKeyboard(s), userID, b.formatCalendar(s))
}

func (b *Bot) calendarKeyboard(s *session) *maxbot.Keyboard {
	filters := []string{
		string(database.EventExam),
		string(database.EventMeeting),
		string(database.EventHomework),
		string(database.EventVacation),
		string(database.EventOther),
	}
	keyboard := GetFilterKeyboard(b.MaxAPI, kindEvent, filters)
	for _, e := range s.events.Visible() {
		keyboard.AddRow().AddCallback("🗑 "+e.Title, schemes.NEGATIVE, fmt.Sprintf(payloadDelete, kindEvent, e.EventID))
	}
	return keyboard
}

// formatCalendar renders the visible events grouped by day, soonest day
// first. A day only shows up while it still has events.
func (b *Bot) formatCalendar(s *session) string {
	visible := s.events.Visible()

	var sb strings.Builder
	sb.WriteString(calendarTitle + "\n")
	if s.events.Search() != "" {
		fmt.Fprintf(&sb, "_Recherche : %s_\n", s.events.Search())
	}
	if s.events.Filter() != collection.FilterAll {
		fmt.Fprintf(&sb, "_Filtre : %s_\n", s.events.Filter())
	}
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(calendarEmpty)
		return sb.String()
	}

	byDate := database.EventsByDate(visible)
	for _, date := range database.EventDates(visible) {
		fmt.Fprintf(&sb, "**%s**\n", date)
		for _, e := range byDate[date] {
			fmt.Fprintf(&sb, "• %s **%s** à %s\n", eventTypeLabels[e.Type], e.Title, e.Time)
			if e.Class != "" {
				fmt.Fprintf(&sb, "   %s · %s · %d min\n", e.Class, e.Location, e.Duration)
			}
		}
	}
	return sb.String()
}

func (b *Bot) eventDialog(s *session) *dialog {
	if err := s.events.BeginAdd(nil); err != nil {
		return nil
	}

	d := &dialog{
		prompts: []prompt{
			{key: "title", text: "Titre de l'événement :"},
			{key: "date", text: "Date (AAAA-MM-JJ) :"},
			{key: "time", text: "Heure (HH:MM) :"},
			{key: "type", text: "Type (exam, meeting, homework, vacation, other) :"},
			{key: "class", text: "Classe concernée :"},
			{key: "location", text: "Lieu :"},
			{key: "duration", text: "Durée en minutes :"},
		},
		set:    s.events.SetField,
		cancel: s.events.CancelEdit,
	}
	d.finish = func(ctx context.Context, userID int64) {
		created, err := s.events.CommitAdd(ctx)
		if err != nil {
			var verr *collection.ValidationError
			if errors.As(err, &verr) {
				b.restartDialog(ctx, userID, s, d)
			}
			return
		}
		b.sendMessage(ctx, userID, fmt.Sprintf(eventCreated, created.Title))
		b.renderCalendar(ctx, userID, s)
	}
	return d
}
