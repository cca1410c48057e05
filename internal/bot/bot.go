// package bot runs the Telegram front end, translating chat messages into
// reconcile operations and reconcile results into replies
package bot

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/castilloh/bandolera/internal/formatter"
	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/tasks"
)

// commandTimeout bounds one message's worth of catalog work, including full
// playlist scans.
const commandTimeout = 60 * time.Second

// pollTimeout is the long-poll window for fetching updates, in seconds.
const pollTimeout = 30

// Engine is the reconcile surface the bot drives. Implemented by
// tasks.ReconcileEngine.
type Engine interface {
	Add(ctx context.Context, raw string) tasks.Result
	Remove(ctx context.Context, raw string) tasks.Result
}

// StatusReporter answers /status. Implemented by services.SpotifyCatalog.
type StatusReporter interface {
	PlaylistInfo(ctx context.Context) (*models.PlaylistInfo, error)
}

// Sender delivers outbound messages. Implemented by tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Opts carries the bot's collaborators. History is optional; everything else
// is required.
type Opts struct {
	API     *tgbotapi.BotAPI
	Engine  Engine
	Status  StatusReporter
	History tasks.HistoryRecorder
	Logger  *log.Logger
}

// Bot is the long-polling Telegram worker. One instance serves one bot
// account and one managed playlist.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	engine  Engine
	status  StatusReporter
	history tasks.HistoryRecorder
	logger  *log.Logger
	timeout time.Duration
}

// New creates a Bot from its collaborators.
func New(opts Opts) *Bot {
	return &Bot{
		api:     opts.API,
		sender:  opts.API,
		engine:  opts.Engine,
		status:  opts.Status,
		history: opts.History,
		logger:  opts.Logger,
		timeout: commandTimeout,
	}
}

// Run long-polls for updates until ctx is canceled. Messages are handled one
// at a time in arrival order, so replies land in the order requests came in.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("bot listening", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	cctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	reply := b.handle(cctx, msg)
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(out); err != nil {
		b.logger.Error("failed to send reply", "chat_id", msg.Chat.ID, "error", err)
	}
}

// handle maps one inbound message to its reply text. Plain text is an add
// request; commands dispatch by name.
func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) string {
	if !msg.IsCommand() {
		query := strings.TrimSpace(msg.Text)
		b.logger.Info("add request", "chat_id", msg.Chat.ID, "query", query)

		res := b.engine.Add(ctx, query)
		b.record(msg.Chat.ID, "add", query, res)
		return formatter.ReconcileReply(res)
	}

	switch msg.Command() {
	case "help", "start":
		return formatter.HelpText

	case "ping":
		return formatter.PingText

	case "status":
		info, err := b.status.PlaylistInfo(ctx)
		if err != nil {
			b.logger.Error("status check failed", "error", err)
			return formatter.StatusErrorReply(err)
		}
		return formatter.StatusReply(info)

	case "remove":
		query := strings.TrimSpace(msg.CommandArguments())
		if query == "" {
			return "⚠️ Decime qué canción quitar: /remove <canción>"
		}
		b.logger.Info("remove request", "chat_id", msg.Chat.ID, "query", query)

		res := b.engine.Remove(ctx, query)
		b.record(msg.Chat.ID, "remove", query, res)
		return formatter.ReconcileReply(res)
	}

	return "No conozco ese comando. Probá /help."
}

// record persists the result when history is wired; failures only log.
func (b *Bot) record(chatID int64, action, query string, res tasks.Result) {
	if b.history == nil {
		return
	}
	if err := b.history.Record(chatID, action, query, res); err != nil {
		b.logger.Warn("failed to record history", "action", action, "error", err)
	}
}
