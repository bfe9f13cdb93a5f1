package maxAPI

import (
	"context"
	"fmt"
	"strings"

	"github.com/max-messenger/max-bot-api-client-go/schemes"
)

const (
	welcomeMsg  = "Bienvenue dans C-Management ! 🎓\n\nVotre assistant de gestion de classes."
	mainMenuMsg = "Menu principal :"

	kindClass     = "class"
	kindStudent   = "student"
	kindEvent     = "event"
	kindRecording = "recording"
	kindReport    = "report"
)

func (b *Bot) handleBotStarted(ctx context.Context, u *schemes.BotStartedUpdate) {
	userID := u.User.UserId
	b.getSession(userID)

	if err := b.sendMessage(ctx, userID, welcomeMsg); err != nil {
		b.logger.Errorf("Failed to send welcome: %v", err)
		return
	}
	b.sendKeyboard(ctx, GetMainMenuKeyboard(b.MaxAPI), userID, mainMenuMsg)
}

func (b *Bot) handleMessageCreated(ctx context.Context, u *schemes.MessageCreatedUpdate) {
	userID := u.Message.Sender.UserId
	messageID := u.Message.Body.Mid

	if b.isMessageProcessed(messageID) {
		b.logger.Debugf("Message %s already processed, skipping", messageID)
		return
	}
	b.markMessageProcessed(messageID)
	defer b.cleanupProcessedMessage(messageID)

	s := b.getSession(userID)
	attachments := u.Message.Body.Attachments
	messageText := strings.TrimSpace(u.Message.Body.Text)

	if len(attachments) > 0 {
		b.handleAttachments(ctx, userID, s, attachments)
		return
	}

	if messageText == "" {
		return
	}

	if b.advanceDialog(ctx, userID, s, messageText) {
		return
	}

	b.sendKeyboard(ctx, GetMainMenuKeyboard(b.MaxAPI), userID, dialogNotUnderstood)
}

func (b *Bot) handleCallback(ctx context.Context, u *schemes.MessageCallbackUpdate) {
	userID := u.Callback.User.UserId
	callbackID := u.Callback.CallbackID
	payload := u.Callback.Payload

	b.logger.Debugf("Callback received: payload=%s, callbackID=%s, userID=%d", payload, callbackID, userID)

	s := b.getSession(userID)

	switch {
	case payload == payloadMenu:
		b.answerWithKeyboard(ctx, callbackID, mainMenuMsg, GetMainMenuKeyboard(b.MaxAPI))
	case payload == payloadDashboard:
		b.handleDashboard(ctx, userID, callbackID, s)
	case payload == payloadStats:
		b.handleStatistics(ctx, userID, callbackID, s)
	case payload == payloadClasses:
		b.handleShowClasses(ctx, userID, callbackID, s)
	case payload == payloadCalendar:
		b.handleShowCalendar(ctx, userID, callbackID, s)
	case payload == payloadRecordings:
		b.handleShowRecordings(ctx, userID, callbackID, s)
	case payload == payloadReports:
		b.handleShowReports(ctx, userID, callbackID, s)
	case payload == payloadSettings:
		b.handleShowSettings(ctx, callbackID, s)

	case strings.HasPrefix(payload, "class_"):
		var classID int64
		fmt.Sscanf(payload, payloadClassOpen, &classID)
		b.handleOpenClass(ctx, userID, callbackID, classID)

	case strings.HasPrefix(payload, "add_"):
		b.handleAdd(ctx, userID, callbackID, s, strings.TrimPrefix(payload, "add_"))
	case strings.HasPrefix(payload, "search_"):
		b.handleSearch(ctx, userID, callbackID, s, strings.TrimPrefix(payload, "search_"))
	case strings.HasPrefix(payload, "del_"):
		b.handleDeleteRequest(ctx, userID, callbackID, s, payload)
	case strings.HasPrefix(payload, "delyes_"):
		b.handleDeleteConfirm(ctx, userID, callbackID, s, strings.TrimPrefix(payload, "delyes_"))
	case strings.HasPrefix(payload, "delno_"):
		b.handleDeleteCancel(ctx, userID, callbackID, s, strings.TrimPrefix(payload, "delno_"))
	case strings.HasPrefix(payload, "flt_"):
		b.handleFilter(ctx, userID, callbackID, s, payload)
	case strings.HasPrefix(payload, "dl_report_"):
		var reportID int64
		fmt.Sscanf(payload, payloadDownload, &reportID)
		b.handleDownloadReport(ctx, userID, callbackID, s, reportID)

	case payload == payloadProfile:
		b.handleEditProfile(ctx, userID, callbackID, s)
	case payload == payloadWeights:
		b.handleEditWeights(ctx, userID, callbackID, s)
	case payload == payloadScale:
		b.answerWithKeyboard(ctx, callbackID, scaleMsg, GetScaleKeyboard(b.MaxAPI))
	case strings.HasPrefix(payload, "scale_"):
		b.handleScaleSelected(ctx, callbackID, s, strings.TrimPrefix(payload, "scale_"))
	case payload == payloadExportClasses:
		b.handleExportClasses(ctx, userID, callbackID, s)
	case payload == payloadExportRoster:
		b.handleExportRoster(ctx, userID, callbackID, s)
	case payload == payloadImportRoster:
		b.handleImportRoster(ctx, userID, callbackID, s)
	case payload == payloadImportClasses:
		b.handleImportClasses(ctx, userID, callbackID, s)

	default:
		b.logger.Warnf("Unknown callback: %s", payload)
	}
}

// handleAdd opens the add dialog for the given entity kind.
func (b *Bot) handleAdd(ctx context.Context, userID int64, callbackID string, s *session, kind string) {
	var d *dialog
	switch kind {
	case kindClass:
		d = b.classDialog(s)
	case kindStudent:
		if s.students == nil {
			b.answerCallbackWithNotification(ctx, callbackID, openClassFirst)
			return
		}
		d = b.studentDialog(s)
	case kindEvent:
		d = b.eventDialog(s)
	case kindRecording:
		d = b.recordingDialog(s)
	case kindReport:
		d = b.reportDialog(s)
	default:
		b.logger.Warnf("Unknown add kind: %s", kind)
		return
	}
	if d == nil {
		b.answerCallbackWithNotification(ctx, callbackID, "Une saisie est déjà en cours.")
		return
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Saisie démarrée")
	b.startDialog(ctx, userID, s, d)
}

// handleSearch opens a one-question dialog for a search term, then
// re-renders the screen with the filtered list.
func (b *Bot) handleSearch(ctx context.Context, userID int64, callbackID string, s *session, kind string) {
	d := &dialog{
		prompts: []prompt{{key: "term", text: "Entrez votre recherche :"}},
	}
	var term string
	d.set = func(_, value string) { term = value }
	d.finish = func(ctx context.Context, userID int64) {
		switch kind {
		case kindClass:
			s.classes.SetSearch(term)
			b.renderClasses(ctx, userID, s)
		case kindStudent:
			if s.students == nil {
				return
			}
			s.students.SetSearch(term)
			b.renderClassDetail(ctx, userID, s)
		case kindEvent:
			s.events.SetSearch(term)
			b.renderCalendar(ctx, userID, s)
		case kindRecording:
			s.recordings.SetSearch(term)
			b.renderRecordings(ctx, userID, s)
		case kindReport:
			s.reports.SetSearch(term)
			b.renderReports(ctx, userID, s)
		}
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Recherche")
	b.startDialog(ctx, userID, s, d)
}

func (b *Bot) handleDeleteRequest(ctx context.Context, userID int64, callbackID string, s *session, payload string) {
	parts := strings.Split(payload, "_")
	if len(parts) != 3 {
		b.logger.Warnf("Invalid delete payload: %s", payload)
		return
	}
	kind := parts[1]
	var id int64
	fmt.Sscanf(parts[2], "%d", &id)

	var label string
	var ok bool
	switch kind {
	case kindClass:
		if item, found := s.classes.RequestDelete(id); found {
			label, ok = item.Name, true
		}
	case kindStudent:
		if s.students == nil {
			return
		}
		if item, found := s.students.RequestDelete(id); found {
			label, ok = item.FullName(), true
		}
	case kindEvent:
		if item, found := s.events.RequestDelete(id); found {
			label, ok = item.Title, true
		}
	case kindRecording:
		if item, found := s.recordings.RequestDelete(id); found {
			label, ok = item.Title, true
		}
	case kindReport:
		if item, found := s.reports.RequestDelete(id); found {
			label, ok = item.Title, true
		}
	}
	if !ok {
		b.answerCallbackWithNotification(ctx, callbackID, "Introuvable.")
		return
	}

	b.mu.Lock()
	s.pendingDelete = kind
	b.mu.Unlock()

	b.answerWithKeyboard(ctx, callbackID,
		fmt.Sprintf("Supprimer **%s** ? Cette action est définitive.", label),
		GetDeleteConfirmKeyboard(b.MaxAPI, kind))
}

func (b *Bot) handleDeleteConfirm(ctx context.Context, userID int64, callbackID string, s *session, kind string) {
	b.mu.Lock()
	pending := s.pendingDelete
	s.pendingDelete = ""
	b.mu.Unlock()

	if pending != kind {
		b.answerCallbackWithNotification(ctx, callbackID, "Aucune suppression en attente.")
		return
	}

	var err error
	switch kind {
	case kindClass:
		err = s.classes.ConfirmDelete(ctx)
	case kindStudent:
		if s.students == nil {
			return
		}
		err = s.students.ConfirmDelete(ctx)
		b.syncStudentCount(s)
	case kindEvent:
		err = s.events.ConfirmDelete(ctx)
	case kindRecording:
		err = s.recordings.ConfirmDelete(ctx)
	case kindReport:
		err = s.reports.ConfirmDelete(ctx)
	}
	if err != nil {
		b.logger.Errorf("Delete confirm failed for %s: %v", kind, err)
		b.answerCallbackWithNotification(ctx, callbackID, "Aucune suppression en attente.")
		return
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Supprimé ✅")
	b.renderAfterChange(ctx, userID, s, kind)
}

func (b *Bot) handleDeleteCancel(ctx context.Context, userID int64, callbackID string, s *session, kind string) {
	b.mu.Lock()
	s.pendingDelete = ""
	b.mu.Unlock()

	switch kind {
	case kindClass:
		s.classes.CancelDelete()
	case kindStudent:
		if s.students != nil {
			s.students.CancelDelete()
		}
	case kindEvent:
		s.events.CancelDelete()
	case kindRecording:
		s.recordings.CancelDelete()
	case kindReport:
		s.reports.CancelDelete()
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Suppression annulée")
	b.renderAfterChange(ctx, userID, s, kind)
}

func (b *Bot) handleFilter(ctx context.Context, userID int64, callbackID string, s *session, payload string) {
	rest := strings.TrimPrefix(payload, "flt_")
	kind, key, found := strings.Cut(rest, "_")
	if !found {
		b.logger.Warnf("Invalid filter payload: %s", payload)
		return
	}

	b.answerCallbackWithNotification(ctx, callbackID, "Filtre appliqué")

	switch kind {
	case kindStudent:
		if s.students == nil {
			return
		}
		s.students.SetFilter(key)
		b.renderClassDetail(ctx, userID, s)
	case kindEvent:
		s.events.SetFilter(key)
		b.renderCalendar(ctx, userID, s)
	case kindRecording:
		s.recordings.SetFilter(key)
		b.renderRecordings(ctx, userID, s)
	case kindReport:
		s.reports.SetFilter(key)
		b.renderReports(ctx, userID, s)
	}
}

// renderAfterChange refreshes whichever screen a mutation touched.
func (b *Bot) renderAfterChange(ctx context.Context, userID int64, s *session, kind string) {
	switch kind {
	case kindClass:
		b.renderClasses(ctx, userID, s)
	case kindStudent:
		b.renderClassDetail(ctx, userID, s)
	case kindEvent:
		b.renderCalendar(ctx, userID, s)
	case kindRecording:
		b.renderRecordings(ctx, userID, s)
	case kindReport:
		b.renderReports(ctx, userID, s)
	}
}

func (b *Bot) isMessageProcessed(messageID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.processedMessages[messageID]
}

func (b *Bot) markMessageProcessed(messageID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.processedMessages[messageID] = true
}

func (b *Bot) cleanupProcessedMessage(messageID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.processedMessages, messageID)
}
