package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rshoplabs/shopbot/internal/config"
	"github.com/rshoplabs/shopbot/internal/executor"
	"github.com/rshoplabs/shopbot/internal/intent"
	"github.com/rshoplabs/shopbot/internal/media"
	"github.com/rshoplabs/shopbot/internal/pending"
)

// Bot wires Telegram events into the intent pipeline: tracker snapshot,
// interpreter, executor, media linking, reply. It serializes events per
// user so an upload is always visible to the next text message's
// snapshot; different users proceed concurrently.
type Bot struct {
	api         *tgbotapi.BotAPI
	interpreter *intent.Interpreter
	exec        *executor.Executor
	tracker     *pending.Tracker
	media       *media.Service
	admins      map[int64]struct{}
	httpClient  *http.Client
	logger      *slog.Logger

	mu         sync.Mutex
	userQueues map[int64]chan func()
}

// NewBot authenticates against the Telegram API and builds the
// orchestrator.
func NewBot(
	log *slog.Logger,
	cfg config.TelegramConfig,
	interpreter *intent.Interpreter,
	exec *executor.Executor,
	tracker *pending.Tracker,
	mediaService *media.Service,
) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	admins := make(map[int64]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = struct{}{}
	}

	return &Bot{
		api:         api,
		interpreter: interpreter,
		exec:        exec,
		tracker:     tracker,
		media:       mediaService,
		admins:      admins,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      log.With(slog.String("adapter", "telegram")),
		userQueues:  make(map[int64]chan func()),
	}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("start", slog.String("username", b.api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			// Drain so the library's polling goroutine can finish its
			// in-flight long-poll and exit.
			for range updates {
			}
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("updates channel closed")
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			msg := update.Message
			b.dispatch(msg.From.ID, func() {
				b.handleMessage(ctx, msg)
			})
		}
	}
}

// dispatch enqueues fn on the user's serial queue. Enqueueing happens on
// the poll loop in arrival order and each queue is drained by a single
// worker, so an upload is always handled before the text message that
// follows it.
func (b *Bot) dispatch(userID int64, fn func()) {
	b.mu.Lock()
	queue, ok := b.userQueues[userID]
	if !ok {
		queue = make(chan func(), 16)
		b.userQueues[userID] = queue
		go func() {
			for f := range queue {
				f()
			}
		}()
	}
	b.mu.Unlock()
	queue <- fn
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	if !b.authorized(userID) {
		b.reply(msg.Chat.ID, msgUnauthorized)
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

// authorized gates on the admin allow-list; an empty list admits
// everyone.
func (b *Bot) authorized(userID int64) bool {
	if len(b.admins) == 0 {
		return true
	}
	_, ok := b.admins[userID]
	return ok
}

func (b *Bot) reply(chatID int64, text string) (tgbotapi.Message, bool) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.logger.Error("send failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("delete message failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
