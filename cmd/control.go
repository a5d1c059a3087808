package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mpvremote/mpvremote/client"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolP("local", "l", false, "Treat the argument as a file in the server's media directory")
	playCmd.Flags().BoolP("replace", "r", false, "Replace whatever is currently playing")
}

var playCmd = &cobra.Command{
	Use:   "play <url|file>",
	Short: "Play a url or a file from the server's media directory",
	Long: `Play a url or a file from the server's media directory.

The server refuses to load a new file while another one is playing unless
--replace is given.`,
	Example: "  mpvremote play https://youtu.be/dQw4w9WgXcQ\n  mpvremote play --local movie.mkv",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		printResponse(newRemote().Play(
			ctx,
			args[0],
			lo.Must(cmd.Flags().GetBool("local")),
			lo.Must(cmd.Flags().GetBool("replace")),
		))
	},
}

// controlCommand describes an argument-less player command.
type controlCommand struct {
	use     string
	short   string
	aliases []string
	call    func(*client.Client, context.Context) (client.Response, error)
}

var controlCommands = []controlCommand{
	{"stop", "Stop playback and clear the playlist", nil, (*client.Client).Stop},
	{"pause", "Toggle pause", []string{"resume"}, (*client.Client).Pause},
	{"mute", "Toggle mute", nil, (*client.Client).Mute},
	{"fullscreen", "Toggle fullscreen", []string{"fs"}, (*client.Client).Fullscreen},
	{"repeat", "Toggle repeating the playlist", []string{"loop"}, (*client.Client).Repeat},
	{"next", "Play the next playlist entry", nil, (*client.Client).Next},
	{"previous", "Play the previous playlist entry", []string{"prev"}, (*client.Client).Previous},
}

func init() {
	for _, c := range controlCommands {
		call := c.call
		rootCmd.AddCommand(&cobra.Command{
			Use:     c.use,
			Short:   c.short,
			Aliases: c.aliases,
			Args:    cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				ctx, cancel := interruptible()
				defer cancel()

				printResponse(call(newRemote(), ctx))
			},
		})
	}
}

func init() {
	rootCmd.AddCommand(seekCmd)
}

var seekCmd = &cobra.Command{
	Use:     "seek <percent>",
	Short:   "Seek to a position given as a percentage of the file",
	Example: "  mpvremote seek 50",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		percent, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			handleErr(fmt.Errorf("invalid position %q: expected a number between 0 and 100", args[0]))
		}

		ctx, cancel := interruptible()
		defer cancel()

		printResponse(newRemote().Seek(ctx, percent))
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}

var volumeCmd = &cobra.Command{
	Use:     "volume <0-100>",
	Short:   "Set the player volume",
	Aliases: []string{"vol"},
	Example: "  mpvremote volume 40",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		volume, err := strconv.Atoi(args[0])
		if err != nil {
			handleErr(fmt.Errorf("invalid volume %q: expected an integer between 0 and 100", args[0]))
		}

		ctx, cancel := interruptible()
		defer cancel()

		printResponse(newRemote().Volume(ctx, volume))
	},
}
