package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/castilloh/bandolera/internal/formatter"
	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/repositories"
	"github.com/castilloh/bandolera/internal/resolver"
	"github.com/castilloh/bandolera/internal/shared"
	"github.com/castilloh/bandolera/internal/tasks"
)

// cliChatID marks history entries created from the terminal rather than chat.
const cliChatID = 0

func (r *Runner) requireQuery(cmd *cli.Command) (string, error) {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return "", fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	return query, nil
}

// PlaylistAdd resolves a query and appends the track.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	return r.reconcile(ctx, cmd, "add")
}

// PlaylistRemove takes the best-matching track out of the playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	return r.reconcile(ctx, cmd, "remove")
}

// reconcile runs one engine operation and prints the chat-style reply.
func (r *Runner) reconcile(ctx context.Context, cmd *cli.Command, action string) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	query, err := r.requireQuery(cmd)
	if err != nil {
		return err
	}

	r.logger.Info(action+" request", "query", query)

	var res tasks.Result
	if action == "add" {
		res = r.engine.Add(ctx, query)
	} else {
		res = r.engine.Remove(ctx, query)
	}

	r.recordHistory(action, query, res)
	r.writePlain("%s\n", formatter.ReconcileReply(res))

	if res.Outcome == tasks.OutcomeFailed {
		return res.Err
	}
	return nil
}

// recordHistory persists mutating CLI results, best effort.
func (r *Runner) recordHistory(action, query string, res tasks.Result) {
	if res.Outcome != tasks.OutcomeAdded && res.Outcome != tasks.OutcomeRemoved {
		return
	}

	repo, db, err := r.openHistory()
	if err != nil {
		r.logger.Warn("skipping history", "error", err)
		return
	}
	defer db.Close()

	adapter := repositories.NewHistoryAdapter(repo)
	if err := adapter.Record(cliChatID, action, query, res); err != nil {
		r.logger.Warn("failed to record history", "error", err)
	}
}

// PlaylistContains checks membership without modifying anything.
func (r *Runner) PlaylistContains(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	query, err := r.requireQuery(cmd)
	if err != nil {
		return err
	}

	track, _, err := resolver.New(r.catalog).Resolve(ctx, query)
	if err != nil {
		return err
	}

	present, err := tasks.NewMembership(r.catalog).Contains(ctx, track.ID)
	if err != nil {
		return err
	}

	if present {
		r.writePlain("✓ In playlist: %s\n", track.Label())
	} else {
		r.writePlain("✗ Not in playlist: %s\n", track.Label())
	}
	return nil
}

// PlaylistShow lists every track in the playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	var all []models.Track
	cursor := ""
	for {
		page, err := r.catalog.PlaylistPage(ctx, cursor)
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
		if page.Next == "" {
			break
		}
		cursor = page.Next
	}

	if cmd.Bool("json") {
		return r.writeJSON(all, cmd.Bool("pretty"))
	}

	info, err := r.catalog.PlaylistInfo(ctx)
	if err != nil {
		return err
	}

	r.writePlain("%s (%d tracks)\n", info.Name, info.Total)
	for i, track := range all {
		r.writePlain("%3d. %s\n", i+1, track.Label())
	}
	return nil
}

// Status checks connectivity and reports playlist metadata.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	info, err := r.catalog.PlaylistInfo(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Connected to %s\n", r.catalog.Name())
	r.writePlain("Playlist: %s\n", info.Name)
	r.writePlain("Tracks: %d\n", info.Total)
	return nil
}
