package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mark-assistant-go/internal/config"
	"github.com/mark-assistant-go/internal/middleware"
	"github.com/mark-assistant-go/internal/orchestrator"
	"github.com/mark-assistant-go/pkg/markdown"
	"github.com/sirupsen/logrus"
)

// Bridge routes Telegram private messages through the same orchestrator
// as the HTTP boundary. Sessions are keyed by the Telegram chat id so a
// user keeps one conversation across both transports of the same chat.
type Bridge struct {
	bot          *tgbotapi.BotAPI
	config       *config.TelegramConfig
	orchestrator *orchestrator.Orchestrator
	metrics      *middleware.Metrics
	logger       *logrus.Logger
}

// NewBridge creates a Telegram bridge. Returns an error if the token is
// rejected by the Telegram API.
func NewBridge(
	cfg *config.TelegramConfig,
	orch *orchestrator.Orchestrator,
	metrics *middleware.Metrics,
	logger *logrus.Logger,
) (*Bridge, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.WithField("username", bot.Self.UserName).Info("Telegram bridge authorized")

	return &Bridge{
		bot:          bot,
		config:       cfg,
		orchestrator: orch,
		metrics:      metrics,
		logger:       logger,
	}, nil
}

// Run consumes updates with long polling until ctx is cancelled
func (b *Bridge) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bridge) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	start := time.Now()
	userID := fmt.Sprintf("tg:%d", msg.Chat.ID)

	reply, classified := b.orchestrator.Handle(ctx, userID, msg.Text)
	b.metrics.RecordChatRequest(classified.String(), "telegram", time.Since(start))

	out := tgbotapi.NewMessage(msg.Chat.ID, markdown.ToTelegramHTML(reply))
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyToMessageID = msg.MessageID

	if _, err := b.bot.Send(out); err != nil {
		// HTML rendering can trip Telegram's parser; retry as plain text
		b.logger.WithError(err).Warn("Failed to send HTML reply, trying plain text")
		out.ParseMode = ""
		out.Text = reply
		if _, err := b.bot.Send(out); err != nil {
			b.logger.WithError(err).Error("Failed to send telegram reply")
		}
	}
}
