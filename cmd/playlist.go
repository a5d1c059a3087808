package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/draft"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.SetOut(os.Stdout)
}

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Build a playlist locally and send it to the server",
	Long: `Build a playlist locally and send it to the server.

Items are urls or names of files in the server's media directory. The draft
is kept between runs until it is cleared.`,
	Aliases: []string{"pl"},
	Run: func(cmd *cobra.Command, args []string) {
		playlistShowCmd.Run(playlistShowCmd, args)
	},
}

func init() {
	playlistCmd.AddCommand(playlistShowCmd)
}

var playlistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the playlist draft",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		items, err := draft.Items()
		handleErr(err)

		if len(items) == 0 {
			cmd.Println(style.Faint("The playlist draft is empty"))
			return
		}

		for i, item := range items {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%3d.", i+1)), item)
		}
	},
}

func init() {
	playlistCmd.AddCommand(playlistAddCmd)
}

var playlistAddCmd = &cobra.Command{
	Use:     "add <item>...",
	Short:   "Append items to the playlist draft",
	Example: "  mpvremote playlist add intro.mkv https://youtu.be/dQw4w9WgXcQ",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		items, err := draft.Append(args...)
		handleErr(err)

		fmt.Printf(
			"%s draft now has %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(items), "item", "items"),
		)
	},
}

func init() {
	playlistCmd.AddCommand(playlistRemoveCmd)
}

var playlistRemoveCmd = &cobra.Command{
	Use:     "remove <position>",
	Short:   "Remove an item from the playlist draft",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		position, err := strconv.Atoi(args[0])
		if err != nil {
			handleErr(fmt.Errorf("invalid position %q", args[0]))
		}

		items, err := draft.Remove(position - 1)
		handleErr(err)

		fmt.Printf(
			"%s draft now has %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(items), "item", "items"),
		)
	},
}

func init() {
	playlistCmd.AddCommand(playlistClearCmd)
}

var playlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the playlist draft",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(draft.Clear())
		fmt.Printf("%s draft cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	playlistCmd.AddCommand(playlistPlayCmd)
	playlistPlayCmd.Flags().IntP("start", "n", 1, "Position of the item to start with")
}

var playlistPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Replace the server's playlist with the draft",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		start := lo.Must(cmd.Flags().GetInt("start"))
		printResponse(draft.Play(ctx, newRemote(), start-1))
	},
}
