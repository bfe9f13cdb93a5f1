package maxAPI

import (
	"context"
	"fmt"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"
)

func (b *Bot) sendMessage(ctx context.Context, userID int64, text string) error {
	_, err := b.MaxAPI.Messages.Send(ctx, maxbot.NewMessage().
		SetUser(userID).
		SetText(text))
	if err != nil && err.Error() != "" {
		return err
	}
	return nil
}

func (b *Bot) sendKeyboard(ctx context.Context, keyboard *maxbot.Keyboard, userID int64, msg string) {
	_, err := b.MaxAPI.Messages.Send(ctx, maxbot.NewMessage().
		SetUser(userID).
		AddKeyboard(keyboard).
		SetText(msg).SetFormat("markdown"))
	if err != nil && err.Error() != "" {
		b.logger.Errorf("Failed to send keyboard: %v", err)
	}
}

// answerWithKeyboard replaces the callback's message with new text and
// buttons.
func (b *Bot) answerWithKeyboard(ctx context.Context, callbackID, text string, keyboard *maxbot.Keyboard) error {
	messageBody := &schemes.NewMessageBody{
		Text:        text,
		Attachments: []interface{}{schemes.NewInlineKeyboardAttachmentRequest(keyboard.Build())},
	}

	answer := &schemes.CallbackAnswer{Message: messageBody}
	_, err := b.MaxAPI.Messages.AnswerOnCallback(ctx, callbackID, answer)
	if err != nil && err.Error() != "" {
		b.logger.Errorf("Failed to answer callback: %v", err)
		return err
	}
	return nil
}

func (b *Bot) answerCallbackWithNotification(ctx context.Context, callbackID, text string) {
	answer := &schemes.CallbackAnswer{Notification: text}
	_, err := b.MaxAPI.Messages.AnswerOnCallback(ctx, callbackID, answer)
	if err != nil && err.Error() != "" {
		b.logger.Errorf("Failed to answer callback: %v", err)
	}
}

// chatNotifier surfaces screen alerts in the user's chat, playing the role
// of the alert dialogs the screens raise.
type chatNotifier struct {
	bot    *Bot
	userID int64
}

func (n *chatNotifier) Alert(ctx context.Context, title, message string) {
	if err := n.bot.sendMessage(ctx, n.userID, fmt.Sprintf("⚠️ %s : %s", title, message)); err != nil {
		n.bot.logger.Errorf("Failed to send alert to user %d: %v", n.userID, err)
	}
}
