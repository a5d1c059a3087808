package cmd

import (
	"time"

	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/tui"
	"github.com/mpvremote/mpvremote/urls"
	"github.com/mpvremote/mpvremote/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().Bool("stop-on-exit", false, "Stop playback when the remote quits")
	_ = viper.BindPFlag(key.ClientStopOnExit, tuiCmd.Flags().Lookup("stop-on-exit"))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive remote",
	Long: `Open the interactive remote.

Shows what is playing, the server's media directory, the saved urls and the
playlist draft. This is what runs when no command is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		remote := newRemote()
		version.Notify(ctx, remote)

		list, err := urls.Load()
		handleErr(err)

		handleErr(tui.Run(ctx, &tui.Options{
			Client:     remote,
			URLs:       list,
			Interval:   time.Duration(viper.GetInt(key.ClientPollInterval)) * time.Millisecond,
			StopOnExit: viper.GetBool(key.ClientStopOnExit),
		}))
	},
}
