package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/urfave/cli/v3"

	"github.com/castilloh/bandolera/internal/bot"
	"github.com/castilloh/bandolera/internal/repositories"
	"github.com/castilloh/bandolera/internal/shared"
	"github.com/castilloh/bandolera/internal/tasks"
)

// Bot runs the Telegram worker until SIGINT or SIGTERM.
func (r *Runner) Bot(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(r.config.Credentials.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("%w: telegram: %v", shared.ErrAuthFailed, err)
	}

	var history tasks.HistoryRecorder
	if !cmd.Bool("no-history") {
		repo, db, err := r.openHistory()
		if err != nil {
			r.logger.Warn("history disabled", "error", err)
		} else {
			defer db.Close()
			history = repositories.NewHistoryAdapter(repo)
		}
	}

	worker := bot.New(bot.Opts{
		API:     api,
		Engine:  r.engine,
		Status:  r.catalog,
		History: history,
		Logger:  r.logger,
	})

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting bot", "playlist", r.config.Playlist.ID)
	return worker.Run(runCtx)
}
