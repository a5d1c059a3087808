package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/open"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/urls"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(urlsCmd)
	urlsCmd.SetOut(os.Stdout)
}

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Manage the saved list of remote streams",
	Run: func(cmd *cobra.Command, args []string) {
		urlsListCmd.Run(urlsListCmd, args)
	},
}

func init() {
	urlsCmd.AddCommand(urlsListCmd)
	urlsListCmd.Flags().StringP("filter", "f", "", "Only show urls fuzzily matching this query")
	urlsListCmd.SetOut(os.Stdout)
}

var urlsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print the saved urls",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		list, err := urls.Load()
		handleErr(err)

		items := list.Items()
		if cmd.Flags().Lookup("filter") != nil {
			if query := lo.Must(cmd.Flags().GetString("filter")); query != "" {
				items = list.Filter(query)
			}
		}

		for _, u := range items {
			cmd.Println(u)
		}
	},
}

func init() {
	urlsCmd.AddCommand(urlsAddCmd)
}

var urlsAddCmd = &cobra.Command{
	Use:   "add <url>...",
	Short: "Save remote streams",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, err := urls.Load()
		handleErr(err)

		for _, u := range args {
			added, err := list.Add(u)
			handleErr(err)

			if added {
				fmt.Printf("%s saved %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), u)
			} else {
				fmt.Printf("%s %s\n", style.Faint("already saved"), u)
			}
		}
	},
}

func init() {
	urlsCmd.AddCommand(urlsRemoveCmd)
}

var urlsRemoveCmd = &cobra.Command{
	Use:     "remove <url>...",
	Short:   "Forget saved streams",
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, err := urls.Load()
		handleErr(err)

		for _, u := range args {
			removed, err := list.Remove(u)
			handleErr(err)

			if removed {
				fmt.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), u)
			} else {
				fmt.Printf("%s %s\n", style.Faint("not saved"), u)
			}
		}
	},
}

func init() {
	urlsCmd.AddCommand(urlsClearCmd)
}

var urlsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved stream",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		list, err := urls.Load()
		handleErr(err)

		handleErr(list.Clear())
		fmt.Printf("%s saved urls cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	urlsCmd.AddCommand(urlsOpenCmd)
}

var urlsOpenCmd = &cobra.Command{
	Use:   "open <url|position>",
	Short: "Open a saved stream in the browser",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		if position, err := strconv.Atoi(target); err == nil {
			list, err := urls.Load()
			handleErr(err)

			items := list.Items()
			if position < 1 || position > len(items) {
				handleErr(fmt.Errorf("no saved url at position %d", position))
			}
			target = items[position-1]
		}

		handleErr(open.URL(target))
	},
}
