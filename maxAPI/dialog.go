package maxAPI

import (
	"context"
	"fmt"
)

const (
	dialogCancelWord    = "/annuler"
	dialogCancelHint    = "(/annuler pour abandonner, - pour passer un champ)"
	dialogSkipWord      = "-"
	dialogCancelled     = "Saisie annulée."
	dialogNotUnderstood = "❓ Je ne comprends pas ce message. Choisissez une action dans le menu."
)

// prompt is one step of a sequential form dialog: the form field it fills
// and the question shown to the user.
type prompt struct {
	key  string
	text string
}

// dialog walks a user through a form one field per message. set stores the
// answer, finish runs once all prompts are answered, cancel discards
// whatever the dialog was building.
type dialog struct {
	prompts []prompt
	index   int
	set     func(key, value string)
	finish  func(ctx context.Context, userID int64)
	cancel  func()
}

// startDialog installs the dialog on the session and asks the first
// question.
func (b *Bot) startDialog(ctx context.Context, userID int64, s *session, d *dialog) {
	b.setDialog(s, d)
	b.askCurrent(ctx, userID, d)
}

// setDialog installs the next dialog. A dialog already in flight is
// cancelled first; its screen would otherwise stay in edit mode with no
// remaining path back to browsing.
func (b *Bot) setDialog(s *session, d *dialog) {
	b.mu.Lock()
	old := s.dialog
	s.dialog = d
	b.mu.Unlock()

	if old != nil && old != d && old.cancel != nil {
		old.cancel()
	}
}

func (b *Bot) askCurrent(ctx context.Context, userID int64, d *dialog) {
	p := d.prompts[d.index]
	if err := b.sendMessage(ctx, userID, fmt.Sprintf("%s\n%s", p.text, dialogCancelHint)); err != nil {
		b.logger.Errorf("Failed to send dialog prompt: %v", err)
	}
}

// advanceDialog consumes one user message. Returns true when the message
// was part of a dialog.
func (b *Bot) advanceDialog(ctx context.Context, userID int64, s *session, text string) bool {
	b.mu.Lock()
	d := s.dialog
	b.mu.Unlock()

	if d == nil {
		return false
	}

	if text == dialogCancelWord {
		b.mu.Lock()
		s.dialog = nil
		b.mu.Unlock()
		if d.cancel != nil {
			d.cancel()
		}
		b.sendMessage(ctx, userID, dialogCancelled)
		b.sendKeyboard(ctx, GetMainMenuKeyboard(b.MaxAPI), userID, mainMenuMsg)
		return true
	}

	if text == dialogSkipWord {
		text = ""
	}

	if d.set != nil {
		d.set(d.prompts[d.index].key, text)
	}
	d.index++

	if d.index < len(d.prompts) {
		b.askCurrent(ctx, userID, d)
		return true
	}

	b.mu.Lock()
	s.dialog = nil
	b.mu.Unlock()

	d.finish(ctx, userID)
	return true
}

// restartDialog reopens a dialog from the first prompt, used when a commit
// bounces on validation and the form is still open.
func (b *Bot) restartDialog(ctx context.Context, userID int64, s *session, d *dialog) {
	d.index = 0
	b.startDialog(ctx, userID, s, d)
}
