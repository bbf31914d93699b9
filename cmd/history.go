package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/urfave/cli/v3"
)

// History shows recently viewed playlists, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	views, err := repositories.NewViewRepository(db).Recent(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(views) == 0 {
		r.writePlain("no history yet\n")
		return nil
	}

	for _, v := range views {
		r.writePlain("%s\t%s\t%s\n", v.CreatedAt.Format("2006-01-02 15:04"), v.Path, v.Title)
	}
	return nil
}
