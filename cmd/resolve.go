package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/castilloh/bandolera/internal/resolver"
	"github.com/castilloh/bandolera/internal/shared"
)

// Resolve resolves a query to a track and prints it, never mutating the
// playlist.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving", "query", query)

	track, score, err := resolver.New(r.catalog).Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) {
			r.writePlain("✗ No accepted match for %q (best score %.2f)\n", query, score)
			return nil
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"id":      track.ID,
			"title":   track.Title,
			"artists": track.Artists,
			"url":     track.URL,
			"score":   score,
		}, cmd.Bool("pretty"))
	}

	r.writePlain("✓ %s\n", track.Label())
	r.writePlain("  id: %s  score: %.2f\n", track.ID, score)
	if track.URL != "" {
		r.writePlain("  %s\n", track.URL)
	}
	return nil
}
