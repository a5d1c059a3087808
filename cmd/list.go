package cmd

import (
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("filter", "f", "", "Only show files fuzzily matching this query")
	listCmd.SetOut(os.Stdout)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the files in the server's media directory",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		files, err := newRemote().List(ctx)
		handleErr(err)

		if query := lo.Must(cmd.Flags().GetString("filter")); query != "" {
			files = fuzzy.FindNormalizedFold(query, files)
		}

		for _, f := range files {
			cmd.Println(f)
		}
	},
}
