package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/mpvremote/mpvremote/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	flag     string
	short    string
	location func() string
}

var clearTargets = []clearTarget{
	{"cache", "cache", "c", where.Cache},
	{"playlist draft", "draft", "d", where.Draft},
	{"saved urls", "urls", "u", where.URLs},
	{"stream directory", "temp", "t", where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "clear the "+t.name)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete local state such as the cache or the playlist draft",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		chosen := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})

		if len(chosen) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range chosen {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
			err := util.Delete(t.location())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), util.Capitalize(t.name))
		}
	},
}
