package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tunebox/internal/formatter"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/services"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistArtist builds a playlist from an artist's top tracks.
func (r *Runner) PlaylistArtist(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.StringArg("name")
	if artist == "" {
		return fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching top tracks", "artist", artist)

	tl, err := r.metadata.TopTracks(ctx, artist)
	if err != nil {
		return fmt.Errorf("failed to fetch top tracks: %w", err)
	}

	pl := services.PlaylistFromArtistTracks(tl)
	return r.outputPlaylist(cmd, &pl)
}

// PlaylistAlbum builds a playlist from an album listing.
func (r *Runner) PlaylistAlbum(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.String("artist")
	name := cmd.String("name")

	r.logger.Info("fetching album", "artist", artist, "album", name)

	info, err := r.metadata.AlbumInfo(ctx, artist, name)
	if err != nil {
		return fmt.Errorf("failed to fetch album: %w", err)
	}

	pl := services.PlaylistFromAlbum(info)
	return r.outputPlaylist(cmd, &pl)
}

// PlaylistSimilar builds a playlist of songs similar to a track, seeded with
// the track itself.
func (r *Runner) PlaylistSimilar(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.String("artist")
	track := cmd.String("track")
	limit := cmd.Int("limit")

	r.logger.Info("fetching similar tracks", "artist", artist, "track", track)

	tl, err := r.metadata.SimilarTracks(ctx, artist, track, int(limit))
	if err != nil {
		return fmt.Errorf("failed to fetch similar tracks: %w", err)
	}

	pl := services.PlaylistFromSimilarTracks(track, artist, tl)
	return r.outputPlaylist(cmd, &pl)
}

// outputPlaylist prints a built playlist and saves it when --save was given.
func (r *Runner) outputPlaylist(cmd *cli.Command, pl *models.Playlist) error {
	if cmd.Bool("save") {
		db, err := r.openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := repositories.NewPlaylistRepository(db).Save(pl)
		if err != nil {
			return fmt.Errorf("failed to save playlist: %w", err)
		}
		r.logger.Info("playlist saved", "id", id, "url", pl.URL)
	}

	if cmd.Bool("json") {
		return r.writeJSON(pl, cmd.Bool("pretty"))
	}

	r.printPlaylist(pl)
	return nil
}

func (r *Runner) printPlaylist(pl *models.Playlist) {
	r.writePlainHeader(pl.Title)
	if pl.Description != "" {
		r.writePlain("%s\n\n", pl.Description)
	}
	for i, song := range pl.Songs {
		r.writePlain("%2d. %s", i+1, song.Title)
		if song.Artist != "" {
			r.writePlain(" - %s", song.Artist)
		}
		r.writePlain("\n")
	}
	r.writePlain("\n%d songs  %s\n", len(pl.Songs), pl.URL)
}

// PlaylistList lists saved playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := repositories.NewPlaylistRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if len(playlists) == 0 {
		r.writePlain("no saved playlists\n")
		return nil
	}

	for _, pl := range playlists {
		r.writePlain("%s\t%s\n", pl.URL, pl.Title)
	}
	return nil
}

// PlaylistShow prints a saved playlist and its songs.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: playlist url", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := repositories.NewPlaylistRepository(db).GetByURL(url)
	if err != nil {
		return err
	}

	r.printPlaylist(pl)
	return nil
}

// PlaylistExport writes a saved playlist in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: playlist url", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := repositories.NewPlaylistRepository(db).GetByURL(url)
	if err != nil {
		return err
	}

	outputPath := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "json":
		if outputPath == "" {
			return r.writeJSON(pl, cmd.Bool("pretty"))
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		prev := r.output
		r.output = f
		defer func() { r.output = prev }()

		if err := r.writeJSON(pl, cmd.Bool("pretty")); err != nil {
			return err
		}
		r.logger.Info("playlist exported", "path", outputPath)
		return nil

	case "csv":
		data, err := formatter.ExportToCSV(pl)
		if err != nil {
			return err
		}
		return r.writeExport(data, outputPath)

	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(pl, outputPath)
		if err != nil {
			return err
		}
		r.logger.Info("playlist exported", "dir", result.Directory, "files", len(result.Files))
		return nil

	case "text", "txt":
		data, err := formatter.ExportToText(pl)
		if err != nil {
			return err
		}
		return r.writeExport(data, outputPath)

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// writeExport sends export bytes to a file when a path was given, stdout
// otherwise.
func (r *Runner) writeExport(data []byte, outputPath string) error {
	if outputPath == "" {
		_, err := r.output.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	r.logger.Info("playlist exported", "path", outputPath)
	return nil
}

// PlaylistDelete removes a saved playlist.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: playlist url", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewPlaylistRepository(db).Delete(url); err != nil {
		return err
	}

	r.writePlain("deleted %s\n", url)
	return nil
}
