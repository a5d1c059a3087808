package cmd

import (
	"os"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a path the where command can print. Internal ones are only
// printed when asked for by flag.
type location struct {
	title    string
	flag     string
	resolve  func() string
	internal bool
}

var locations = []location{
	{"Config", "config", where.Config, false},
	{"Media", "media", where.Media, false},
	{"Saved URLs", "urls", where.URLs, false},
	{"Logs", "logs", where.Logs, false},
	{"Cache", "cache", where.Cache, true},
	{"Stream directory", "temp", where.Temp, true},
	{"Playlist draft", "draft", where.Draft, true},
	{"Player socket", "socket", where.Socket, true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().Bool(l.flag, false, l.title+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where files are kept",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.resolve())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		shown := lo.Reject(locations, func(l location, _ int) bool { return l.internal })

		for i, l := range shown {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.title), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.resolve())
		}
	},
}
