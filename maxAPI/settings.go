package maxAPI

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cmanagement/services"
)

const (
	settingsTitle = "⚙️ **Paramètres**"
	scaleMsg      = "Choisissez le barème par défaut :"

	profileSavedMsg = "✅ Profil mis à jour"
	weightsSavedMsg = "✅ Coefficients enregistrés : devoirs %d%% / examens %d%%"
	scaleSavedMsg   = "Barème enregistré"

	exportDir       = "./exports"
	exportDoneMsg   = "📤 Export écrit dans %s"
	exportFailedMsg = "⚠️ Erreur : Impossible d'écrire l'export"
	openClassFirst  = "Ouvrez d'abord une classe pour exporter ses élèves."
)

var scaleLabels = map[services.GradeScale]string{
	services.Scale20:     "Sur 20",
	services.Scale100:    "Sur 100",
	services.ScaleLetter: "Lettres",
}

func (b *Bot) handleShowSettings(ctx context.Context, callbackID string, s *session) {
	b.answerWithKeyboard(ctx, callbackID, b.formatSettings(s), GetSettingsKeyboard(b.MaxAPI))
}

func (b *Bot) formatSettings(s *session) string {
	var sb strings.Builder
	sb.WriteString(settingsTitle + "\n\n")

	p := s.settings.Profile
	fmt.Fprintf(&sb, "👤 **%s** · %s\n", p.Name, p.Role)
	fmt.Fprintf(&sb, "   %s · %s\n", p.Email, p.Phone)
	fmt.Fprintf(&sb, "   🏫 %s\n\n", p.Institution)

	w := s.settings.Weights
	fmt.Fprintf(&sb, "⚖️ Coefficients : devoirs %d%% / examens %d%%\n", w.Devoirs, w.Examens)
	fmt.Fprintf(&sb, "📏 Barème : %s\n", scaleLabels[s.settings.Scale])
	return sb.String()
}

func (b *Bot) handleEditProfile(ctx context.Context, userID int64, callbackID string, s *session) {
	b.mu.Lock()
	busy := s.dialog != nil
	b.mu.Unlock()
	if busy {
		b.answerCallbackWithNotification(ctx, callbackID, "Une saisie est déjà en cours.")
		return
	}

	draft := s.settings.Profile
	d := &dialog{
		prompts: []prompt{
			{key: "name", text: "Votre nom :"},
			{key: "email", text: "Votre email :"},
			{key: "role", text: "Votre fonction :"},
			{key: "phone", text: "Votre téléphone :"},
			{key: "institution", text: "Votre établissement :"},
		},
		set: func(key, value string) {
			if value == "" {
				return
			}
			switch key {
			case "name":
				draft.Name = value
			case "email":
				draft.Email = value
			case "role":
				draft.Role = value
			case "phone":
				draft.Phone = value
			case "institution":
				draft.Institution = value
			}
		},
		finish: func(ctx context.Context, userID int64) {
			s.settings.SaveProfile(draft)
			b.sendMessage(ctx, userID, profileSavedMsg)
			b.sendKeyboard(ctx, GetSettingsKeyboard(b.MaxAPI), userID, b.formatSettings(s))
		},
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Modification du profil")
	b.startDialog(ctx, userID, s, d)
}

// handleEditWeights collects both coefficients and saves them atomically:
// an invalid pair is rejected with the offending total and the saved values
// stay as they were.
func (b *Bot) handleEditWeights(ctx context.Context, userID int64, callbackID string, s *session) {
	b.mu.Lock()
	busy := s.dialog != nil
	b.mu.Unlock()
	if busy {
		b.answerCallbackWithNotification(ctx, callbackID, "Une saisie est déjà en cours.")
		return
	}

	values := map[string]int{}
	d := &dialog{
		prompts: []prompt{
			{key: "devoirs", text: "Coefficient des devoirs (%) :"},
			{key: "examens", text: "Coefficient des examens (%) :"},
		},
		set: func(key, value string) {
			n, _ := strconv.Atoi(value)
			values[key] = n
		},
	}
	d.finish = func(ctx context.Context, userID int64) {
		w := services.Weights{Devoirs: values["devoirs"], Examens: values["examens"]}
		if err := s.settings.SaveWeights(w); err != nil {
			b.sendMessage(ctx, userID, "⚠️ "+err.Error())
			b.restartDialog(ctx, userID, s, d)
			return
		}
		b.sendMessage(ctx, userID, fmt.Sprintf(weightsSavedMsg, w.Devoirs, w.Examens))
		b.sendKeyboard(ctx, GetSettingsKeyboard(b.MaxAPI), userID, b.formatSettings(s))
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Modification des coefficients")
	b.startDialog(ctx, userID, s, d)
}

func (b *Bot) handleScaleSelected(ctx context.Context, callbackID string, s *session, value string) {
	s.settings.SetScale(services.GradeScale(value))
	b.answerWithKeyboard(ctx, callbackID, scaleSavedMsg+"\n\n"+b.formatSettings(s), GetSettingsKeyboard(b.MaxAPI))
}

func (b *Bot) handleExportClasses(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.classes) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	path := filepath.Join(exportDir, "classes.csv")
	if err := b.writeExport(path, func(f *os.File) error {
		return services.ExportClassesCSV(s.classes.Store().Items(), f)
	}); err != nil {
		b.logger.Errorf("Classes export failed: %v", err)
		b.answerCallbackWithNotification(ctx, callbackID, exportFailedMsg)
		return
	}

	b.answerCallbackWithNotification(ctx, callbackID, fmt.Sprintf(exportDoneMsg, path))
}

func (b *Bot) handleExportRoster(ctx context.Context, userID int64, callbackID string, s *session) {
	if s.students == nil {
		b.answerCallbackWithNotification(ctx, callbackID, openClassFirst)
		return
	}

	path := filepath.Join(exportDir, fmt.Sprintf("eleves_classe_%d.csv", s.classID))
	if err := b.writeExport(path, func(f *os.File) error {
		return services.ExportStudentsCSV(s.students.Store().Items(), f)
	}); err != nil {
		b.logger.Errorf("Roster export failed: %v", err)
		b.answerCallbackWithNotification(ctx, callbackID, exportFailedMsg)
		return
	}

	b.answerCallbackWithNotification(ctx, callbackID, fmt.Sprintf(exportDoneMsg, path))
}

func (b *Bot) writeExport(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
