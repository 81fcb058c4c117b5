package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/songmatch/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	serverURL  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var (
		flags       globalFlags
		prefsPath   string
		pollSeconds int
	)

	cmd := &cobra.Command{
		Use:   "songmatch",
		Short: "Terminal front end for the songmatch catalogue",
		Long: `songmatch browses the song catalogue, submits new songs and identifies
recordings against a songmatch server.

Without a subcommand it starts the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				PrefsPath:  prefsPath,
				PollEvery:  pollSeconds,
				ServerURL:  flags.serverURL,
				LogLevel:   flags.logLevel,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: ~/.config/songmatch/config.toml)")
	cmd.PersistentFlags().StringVar(&flags.serverURL, "server", "", "server address, overrides server_url")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level, overrides log_level")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default: ~/.config/songmatch/prefs.toml)")
	cmd.Flags().IntVar(&pollSeconds, "poll", 0, "catalogue refresh interval in seconds")

	cmd.AddCommand(
		newSongsCmd(&flags),
		newAddCmd(&flags),
		newMatchCmd(&flags),
	)
	return cmd
}
