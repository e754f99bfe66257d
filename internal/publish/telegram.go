package publish

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	logx "postbot/pkg/logx"
)

// Telegram posts to a chat or channel through a bot token. It is the backend
// for setups where a Telegram channel stands in for a timeline.
type Telegram struct {
	token  string
	chatID int64
	log    logx.Logger

	// bot is created on first Publish so that credential validation and dry
	// runs never touch the network (NewBot performs a getMe call).
	mu  sync.Mutex
	bot *tele.Bot
}

func NewTelegram(token string, chatID int64, log logx.Logger) *Telegram {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Telegram{token: token, chatID: chatID, log: log}
}

func (t *Telegram) Platform() string { return "telegram" }

func (t *Telegram) ValidateCredentials() error {
	if strings.TrimSpace(t.token) == "" {
		return fmt.Errorf("%w: bot token (set TELEGRAM_BOT_TOKEN or publisher.telegram config)", ErrMissingCredentials)
	}
	if t.chatID == 0 {
		return fmt.Errorf("%w: chat id (set TELEGRAM_CHAT_ID or publisher.telegram config)", ErrMissingCredentials)
	}
	return nil
}

func (t *Telegram) Publish(ctx context.Context, text string) error {
	if err := t.ValidateCredentials(); err != nil {
		return err
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	bot, err := t.connect()
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	chat := &tele.Chat{ID: t.chatID}
	if _, err := bot.Send(chat, text, &tele.SendOptions{DisableWebPagePreview: true}); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	t.log.Debug("telegram message accepted", logx.Int64("chat_id", t.chatID))
	return nil
}

func (t *Telegram) connect() (*tele.Bot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	b, err := tele.NewBot(tele.Settings{Token: t.token})
	if err != nil {
		return nil, err
	}
	t.bot = b
	return b, nil
}
