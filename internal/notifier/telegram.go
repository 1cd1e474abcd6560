package notifier

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"MarketLens/internal/logger"
)

// Options configures a TelegramNotifier.
type Options struct {
	BotToken string
	ChatID   string
	Proxy    string
	// Endpoint overrides tgbot.APIEndpoint, mainly for tests.
	Endpoint string
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	bot     *tgbot.BotAPI
	chatID  int64
	backoff time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
// It calls getMe, so an invalid token fails here.
func NewTelegramNotifier(opts Options) (*TelegramNotifier, error) {
	chatID, err := strconv.ParseInt(opts.ChatID, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "telegram chat id %q", opts.ChatID)
	}

	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	// Long polling holds requests for up to 30s.
	client := &http.Client{Timeout: 35 * time.Second, Transport: transport}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbot.APIEndpoint
	}
	bot, err := tgbot.NewBotAPIWithClient(opts.BotToken, endpoint, client)
	if err != nil {
		return nil, errors.Wrap(err, "connect telegram bot")
	}

	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	logger.Info("telegram notifier ready as @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID, backoff: backoff}, nil
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	msg := tgbot.NewMessage(t.chatID, text)
	msg.ParseMode = tgbot.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := t.backoff * time.Duration(1<<uint(i))
		logger.Warn("telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return errors.Wrapf(lastErr, "all %d attempts failed", maxRetries+1)
}
