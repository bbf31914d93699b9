package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/player"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal player. The target argument is a
// saved playlist URL path (leading slash) or an artist name.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	target := cmd.StringArg("target")
	if target == "" {
		return fmt.Errorf("%w: playlist url or artist name", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunebox-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlists := repositories.NewPlaylistRepository(db)
	views := repositories.NewViewRepository(db)

	events := make(chan player.Event, 64)
	emit := func(ev player.Event) {
		if ev.Kind == player.EventViewPushed {
			data := ev.Data.(player.ViewData)
			if _, err := views.Record(data.Path, data.Title, data.Playlist.ID); err != nil {
				fileLogger.Warn("failed to record view", "err", err)
			}
		}
		select {
		case events <- ev:
		default:
			// the UI fell behind; stale events are safe to drop
		}
	}

	engine := player.NewEngine(player.NewBrowserPlayer(fileLogger), r.config.Player, fileLogger)
	ctrl := player.NewController(ctx, player.ControllerOpts{
		Engine:   engine,
		Resolver: r.search,
		Metadata: r.metadata,
		Fetcher:  playlists,
		Logger:   fileLogger,
		Config:   r.config.Player,
		Emit:     emit,
	})

	go func() {
		var err error
		if strings.HasPrefix(target, "/") {
			err = ctrl.LoadPlaylistByURL(ctx, target)
		} else {
			err = ctrl.LoadPlaylistForArtist(ctx, target)
		}
		if err != nil {
			fileLogger.Error("failed to load playlist", "target", target, "err", err)
		}
	}()

	model := ui.NewModel(ctx, ctrl, events)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
