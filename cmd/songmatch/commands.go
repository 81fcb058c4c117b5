package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/songmatch/internal/app"
	"github.com/five82/songmatch/internal/config"
	"github.com/five82/songmatch/internal/logging"
	"github.com/five82/songmatch/internal/request"
	"github.com/five82/songmatch/internal/songs"
)

func newSongsCmd(flags *globalFlags) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "Print one page of the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newClient(cmd, flags)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.PageLimit
			}

			var listing songs.SongPage
			err = await(cmd.Context(), client.ListSongs(page, limit), func(body request.Payload) error {
				decoded, err := songs.DecodeSongPage(body)
				listing = decoded
				return err
			})
			if err != nil {
				return err
			}
			return printSongPage(cmd, listing)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "songs per page (default: page_limit from config)")
	return cmd
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <youtu.be-url>",
		Short: "Submit a song to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd, flags)
			if err != nil {
				return err
			}
			coord, err := client.AddSong(args[0])
			if err != nil {
				return err
			}
			if err := await(cmd.Context(), coord, nil); err != nil {
				return fmt.Errorf("add song: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
			return nil
		},
	}
}

func newMatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "match <audio-file>",
		Short: "Identify a recording against the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd, flags)
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open audio: %w", err)
			}
			coord, err := client.MatchAudio(path, file)
			file.Close()
			if err != nil {
				return err
			}

			var song songs.Song
			err = await(cmd.Context(), coord, func(body request.Payload) error {
				decoded, err := songs.DecodeSong(body)
				song = decoded
				return err
			})
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title: %s\n", song.Title)
			fmt.Fprintf(out, "url:   %s\n", song.URL)
			if embed, err := songs.EmbedURL(song.URL); err == nil {
				fmt.Fprintf(out, "embed: %s\n", embed)
			}
			return nil
		},
	}
}

func newClient(cmd *cobra.Command, flags *globalFlags) (*songs.Client, config.Config, error) {
	cfg, err := app.LoadConfig(flags.configPath, flags.serverURL, flags.logLevel)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger := logging.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)
	client, err := songs.NewClient(cfg.ServerURL, cfg.Timeout, logger)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("init songs client: %w", err)
	}
	return client, cfg, nil
}

// await runs one logical request to completion and returns its outcome as
// an error. decode may be nil when the success body is not needed.
func await(ctx context.Context, coord *request.Coordinator, decode func(request.Payload) error) error {
	var result error
	coord.OnSuccess(func(body request.Payload) {
		if decode != nil {
			result = decode(body)
		}
	})
	coord.OnError(func(status int, body request.Payload) {
		result = songs.NewAPIError(status, body)
	})
	coord.OnFail(func(err error) {
		result = err
	})

	finished := make(chan struct{})
	coord.Initiate()
	go func() {
		coord.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		coord.Close()
		return result
	case <-ctx.Done():
		coord.Close()
		return ctx.Err()
	}
}

func printSongPage(cmd *cobra.Command, listing songs.SongPage) error {
	out := cmd.OutOrStdout()
	if len(listing.Songs) == 0 {
		fmt.Fprintln(out, "no songs")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTITLE\tURL")
	first := listing.FirstNumber()
	for i, song := range listing.Songs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", first+i, song.ID, song.Title, song.URL)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "page %d of %d, %d songs\n", listing.Page, listing.PageCount(), listing.Total)
	return nil
}
