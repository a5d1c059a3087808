package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mpvremote/mpvremote/auth"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/style"
	"github.com/spf13/viper"
)

// newRemote builds a client for the configured server, authenticated with
// the token saved by login, if any.
func newRemote() *client.Client {
	server := viper.GetString(key.ClientServer)

	token, err := auth.GetToken(server)
	if err != nil {
		log.Warnf("read token for %s: %v", server, err)
	}

	timeout := time.Duration(viper.GetInt(key.ClientTimeout)) * time.Second
	return client.New(server, token, timeout)
}

// interruptible returns a context cancelled on ctrl+c.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// printResponse prints the server's message for an accepted command.
func printResponse(res client.Response, err error) {
	handleErr(err)
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), res.Message)
}
