package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checkExtension rejects files the player is not expected to handle.
func checkExtension(path string) error {
	allowed := viper.GetStringSlice(key.ClientMediaExtensions)
	if len(allowed) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if lo.Contains(allowed, ext) {
		return nil
	}

	return fmt.Errorf("%s is not a media file, expected one of %s", path, strings.Join(allowed, ", "))
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

var uploadCmd = &cobra.Command{
	Use:     "upload <file>...",
	Short:   "Copy local files into the server's media directory",
	Example: "  mpvremote upload ~/Downloads/*.mkv",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			handleErr(checkExtension(path))
		}

		ctx, cancel := interruptible()
		defer cancel()

		remote := newRemote()
		for _, path := range args {
			printResponse(transfer(fmt.Sprintf("Uploading %s", filepath.Base(path)), func() (client.Response, error) {
				return remote.Upload(ctx, path)
			}))
		}
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().BoolP("replace", "r", false, "Replace whatever is currently playing")
}

var streamCmd = &cobra.Command{
	Use:   "stream <file>",
	Short: "Send a local file to the server and play it right away",
	Long: `Send a local file to the server and play it right away.

Streamed files are kept in the server's temp directory, which is wiped
every time the server starts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		handleErr(checkExtension(path))

		ctx, cancel := interruptible()
		defer cancel()

		remote := newRemote()
		res, err := transfer(fmt.Sprintf("Streaming %s", filepath.Base(path)), func() (client.Response, error) {
			return remote.Stream(ctx, path)
		})
		handleErr(err)

		printResponse(remote.Play(ctx, res.File, true, lo.Must(cmd.Flags().GetBool("replace"))))
	},
}

// transfer shows a progress line while fn runs.
func transfer(msg string, fn func() (client.Response, error)) (client.Response, error) {
	erase := util.PrintErasable(fmt.Sprintf("%s %s...", style.Fg(color.Yellow)(icon.Get(icon.Upload)), msg))
	defer erase()

	return fn()
}
