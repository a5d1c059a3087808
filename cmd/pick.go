package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().BoolP("replace", "r", false, "Replace whatever is currently playing")
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a file from the server's media directory and play it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		remote := newRemote()
		files, err := remote.List(ctx)
		handleErr(err)

		if len(files) == 0 {
			handleErr(errors.New("the media directory is empty"))
		}

		var choice string
		err = survey.AskOne(&survey.Select{
			Message:  "Play",
			Options:  files,
			PageSize: 15,
		}, &choice)
		if errors.Is(err, terminal.InterruptErr) {
			return
		}
		handleErr(err)

		printResponse(remote.Play(ctx, choice, true, lo.Must(cmd.Flags().GetBool("replace"))))
	},
}
