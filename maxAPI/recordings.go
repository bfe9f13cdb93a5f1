package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/collection"
	"cmanagement/database"
	"cmanagement/services"
)

const (
	recordingsTitle  = "🎙️ **Enregistrements**"
	recordingsEmpty  = "Aucun enregistrement ne correspond."
	recordingCreated = "✅ Enregistrement **%s** publié"
	sendMediaMsg     = "Envoyez maintenant le fichier audio ou le document à joindre."
	mediaMissingMsg  = "Aucun fichier reçu. Envoyez un fichier ou tapez /annuler."
	uploadFailedMsg  = "⚠️ Erreur : Impossible de téléverser le fichier"
)

func (b *Bot) handleShowRecordings(ctx context.Context, userID int64, callbackID string, s *session) {
	if !ensureLoaded(ctx, s.recordings) {
		b.answerCallbackWithNotification(ctx, callbackID, loadingMessage)
		return
	}

	b.answerWithKeyboard(ctx, callbackID, b.formatRecordings(s), b.recordingsKeyboard(s))
}

func (b *Bot) renderRecordings(ctx context.Context, userID int64, s *session) {
	b.sendKeyboard(ctx, b.recordingsKeyboard(s), userID, b.formatRecordings(s))
}

func (b *Bot) recordingsKeyboard(s *session) *maxbot.Keyboard {
	keyboard := GetFilterKeyboard(b.MaxAPI, kindRecording, []string{
		string(database.RecordingAudio),
		string(database.RecordingFile),
	})
	for _, r := range s.recordings.Visible() {
		keyboard.AddRow().AddCallback("🗑 "+r.Title, schemes.NEGATIVE, fmt.Sprintf(payloadDelete, kindRecording, r.RecordingID))
	}
	return keyboard
}

func (b *Bot) formatRecordings(s *session) string {
	visible := s.recordings.Visible()

	var sb strings.Builder
	sb.WriteString(recordingsTitle + "\n")
	if s.recordings.Search() != "" {
		fmt.Fprintf(&sb, "_Recherche : %s_\n", s.recordings.Search())
	}
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(recordingsEmpty)
		return sb.String()
	}

	for _, r := range visible {
		icon := "🎙️"
		if r.Kind == database.RecordingFile {
			icon = "📎"
		}
		fmt.Fprintf(&sb, "%s **%s** · %s · %s\n", icon, r.Title, r.Subject, r.Class)
		fmt.Fprintf(&sb, "   %s", r.Date)
		if r.Kind == database.RecordingAudio && r.Duration > 0 {
			fmt.Fprintf(&sb, " · %s", services.FormatDuration(r.Duration))
		}
		if r.Size != "" {
			fmt.Fprintf(&sb, " · %s", r.Size)
		}
		sb.WriteString("\n")
		if r.URL != "" {
			fmt.Fprintf(&sb, "   🔗 %s\n", r.URL)
		}
	}
	return sb.String()
}

// recordingDialog collects the metadata, then waits for the media
// attachment before committing.
func (b *Bot) recordingDialog(s *session) *dialog {
	if err := s.recordings.BeginAdd(nil); err != nil {
		return nil
	}

	return &dialog{
		prompts: []prompt{
			{key: "title", text: "Titre de l'enregistrement :"},
			{key: "subject", text: "Matière :"},
			{key: "class", text: "Classe :"},
			{key: "description", text: "Description :"},
		},
		set: s.recordings.SetField,
		cancel: func() {
			s.recordings.CancelEdit()
		},
		finish: func(ctx context.Context, userID int64) {
			b.mu.Lock()
			s.pendingMedia = true
			b.mu.Unlock()
			b.sendMessage(ctx, userID, sendMediaMsg)
		},
	}
}

// handleAttachments finishes a pending recording: the media goes through
// the upload boundary and the form commits with the returned URL.
func (b *Bot) handleAttachments(ctx context.Context, userID int64, s *session, attachments []interface{}) {
	b.mu.Lock()
	pendingMedia := s.pendingMedia
	pendingImport := s.pendingImport
	b.mu.Unlock()

	if !pendingMedia && pendingImport == "" {
		b.sendKeyboard(ctx, GetMainMenuKeyboard(b.MaxAPI), userID, dialogNotUnderstood)
		return
	}

	var fileAtt *schemes.FileAttachment
	for _, att := range attachments {
		if fa, ok := att.(*schemes.FileAttachment); ok {
			fileAtt = fa
			break
		}
	}
	if fileAtt == nil {
		b.sendMessage(ctx, userID, mediaMissingMsg)
		return
	}

	if pendingImport != "" {
		b.handleImportedFile(ctx, userID, s, pendingImport, fileAtt)
		return
	}

	b.mu.Lock()
	s.pendingMedia = false
	b.mu.Unlock()

	mimeType := mime.TypeByExtension(path.Ext(fileAtt.Filename))
	result, err := b.uploader.Upload(ctx, fileAtt.Payload.Url, fileAtt.Filename, mimeType)
	if err != nil {
		b.logger.Errorf("Upload failed for user %d: %v", userID, err)
		b.sendMessage(ctx, userID, uploadFailedMsg)
		s.recordings.CancelEdit()
		return
	}

	s.recordings.SetField("url", result.URL)
	s.recordings.SetField("kind", services.KindForMime(mimeType))
	s.recordings.SetField("file_type", strings.TrimPrefix(path.Ext(fileAtt.Filename), "."))

	created, err := s.recordings.CommitAdd(ctx)
	if err != nil {
		var verr *collection.ValidationError
		if errors.As(err, &verr) {
			b.logger.Warnf("Recording commit bounced for user %d: %v", userID, err)
			s.recordings.CancelEdit()
		}
		return
	}

	b.sendMessage(ctx, userID, fmt.Sprintf(recordingCreated, created.Title))
	b.renderRecordings(ctx, userID, s)
}
