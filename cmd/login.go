package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mpvremote/mpvremote/auth"
	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save the api key of the configured server in the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		server := viper.GetString(key.ClientServer)

		var token string
		handleErr(survey.AskOne(&survey.Password{
			Message: fmt.Sprintf("API key for %s", server),
		}, &token, survey.WithValidator(survey.Required)))

		handleErr(auth.SetToken(server, token))

		ctx, cancel := interruptible()
		defer cancel()

		if _, err := newRemote().Status(ctx); err != nil {
			handleErr(errors.Join(fmt.Errorf("saved, but the server rejected the key"), err))
		}

		fmt.Printf("%s logged in to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), server)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved api key of the configured server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		server := viper.GetString(key.ClientServer)
		handleErr(auth.DeleteToken(server))
		fmt.Printf("%s logged out of %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), server)
	},
}
