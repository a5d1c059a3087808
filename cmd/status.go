package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/server"
	"github.com/mpvremote/mpvremote/status"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("json", "j", false, "Print the raw status snapshot")
	statusCmd.Flags().BoolP("watch", "w", false, "Keep printing the status as the server pushes changes")
	statusCmd.SetOut(os.Stdout)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the player is doing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			watch  = lo.Must(cmd.Flags().GetBool("watch"))
			remote = newRemote()
		)

		ctx, cancel := interruptible()
		defer cancel()

		show := func(snap status.Snapshot) {
			if asJson {
				lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(snap))
				return
			}
			cmd.Print(renderStatus(snap))
		}

		if !watch {
			snap, err := remote.Status(ctx)
			handleErr(err)
			show(snap)
			return
		}

		err := remote.Watch(ctx, func(ev server.Event) {
			if ev.Type != server.EventStatus || ev.Status == nil {
				return
			}
			if !asJson {
				util.ClearScreen()
			}
			show(*ev.Status)
		})
		if ctx.Err() == nil {
			handleErr(err)
		}
	},
}

func renderStatus(snap status.Snapshot) string {
	var b strings.Builder

	title := style.New().Bold(true).Foreground(color.HiPurple).Render
	faint := style.Faint

	if !snap.Loaded() {
		b.WriteString(style.Fg(color.Idle)(icon.Get(icon.Stop)) + " " + title("Nothing is playing") + "\n")
	} else {
		state := style.Fg(color.Playing)(icon.Get(icon.Play))
		if snap.Pause {
			state = style.Fg(color.Paused)(icon.Get(icon.Pause))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", state, title(*snap.Filename)))

		if snap.TimePos != nil && snap.Duration != nil {
			b.WriteString(fmt.Sprintf(
				"  %s / %s  %s\n",
				util.FormatSeconds(*snap.TimePos),
				util.FormatSeconds(*snap.Duration),
				faint(fmt.Sprintf("%.0f%%", lo.FromPtr(snap.PercentPos))),
			))
		}
	}

	flags := []string{fmt.Sprintf("volume %d", snap.Volume)}
	for _, f := range []struct {
		on   bool
		name string
	}{
		{snap.Mute, "muted"},
		{snap.Fullscreen, "fullscreen"},
		{snap.Repeat, "repeat"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	b.WriteString("  " + faint(strings.Join(flags, " · ")) + "\n")

	if len(snap.PlaylistNames) > 1 {
		b.WriteString("\n")
		for i, name := range snap.PlaylistNames {
			line := fmt.Sprintf("%3d. %s", i+1, name)
			if i == snap.PlaylistPos {
				line = style.Fg(color.Green)(line)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
