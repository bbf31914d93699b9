package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Resolve looks up a playable video for a song and prints its location.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	artist := cmd.StringArg("artist")
	if title == "" {
		return fmt.Errorf("%w: song title", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving song", "title", title, "artist", artist)

	id, err := r.search.Resolve(ctx, title, artist)
	if err != nil {
		return err
	}

	if cmd.Bool("url") {
		r.writePlain("https://www.youtube.com/watch?v=%s\n", id)
	} else {
		r.writePlain("%s\n", id)
	}
	return nil
}
