package notifier

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"MarketLens/internal/logger"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(ctx context.Context, command string) string

// StartPolling long-polls for commands from the configured chat and replies
// with the handler's answer. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			logger.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(ctx, update, handler)
		}
	}
}

func (t *TelegramNotifier) handleUpdate(ctx context.Context, update tgbot.Update, handler CommandHandler) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}
	if msg.Chat == nil || msg.Chat.ID != t.chatID {
		logger.Warn("ignoring message from chat outside configuration")
		return
	}
	text := strings.TrimSpace(msg.Text)
	logger.Info("received command: %s", text)
	if reply := handler(ctx, text); reply != "" {
		if err := t.Send(reply); err != nil {
			logger.Error("send reply: %v", err)
		}
	}
}
