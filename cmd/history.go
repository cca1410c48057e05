package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// History prints the most recent playlist changes, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repo.Recent(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			out = append(out, map[string]any{
				"sequence":   e.Sequence(),
				"chat_id":    e.ChatID(),
				"action":     e.Action(),
				"outcome":    e.Outcome(),
				"track_id":   e.TrackID(),
				"label":      e.Label(),
				"query":      e.Query(),
				"created_at": e.CreatedAt(),
			})
		}
		return r.writeJSON(out, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No history yet.\n")
	}

	for _, e := range entries {
		r.writePlain("#%-4d %s  %-7s %s\n",
			e.Sequence(),
			e.CreatedAt().Format("2006-01-02 15:04"),
			e.Outcome(),
			e.Label(),
		)
	}
	return nil
}
