package notify

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TelegramChannel delivers notifications to a candidate's Telegram chat.
// Send-only: the bot is never started for polling.
type TelegramChannel struct {
	bot    *tele.Bot
	logger *zap.Logger
}

func NewTelegramChannel(token string, logger *zap.Logger) (*TelegramChannel, error) {
	pref := tele.Settings{
		Token: token,
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("telegram channel initialized")

	return &TelegramChannel{
		bot:    b,
		logger: logger,
	}, nil
}

func (t *TelegramChannel) Name() string {
	return "telegram"
}

func (t *TelegramChannel) Send(_ context.Context, profile *models.Profile, n *models.Notification) error {
	if profile.TelegramChatID == nil {
		return fmt.Errorf("candidate has no telegram chat id")
	}

	recipient := &tele.User{ID: *profile.TelegramChatID}

	message := fmt.Sprintf("🔔 %s\n\n%s", n.Title, n.Message)

	if _, err := t.bot.Send(recipient, message); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}
