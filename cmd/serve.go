package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/player"
	"github.com/mpvremote/mpvremote/server"
	"github.com/mpvremote/mpvremote/session"
	"github.com/mpvremote/mpvremote/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// simulatorTick is how often the simulated engine advances playback.
const simulatorTick = 250 * time.Millisecond

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Interface to listen on")
	lo.Must0(viper.BindPFlag(key.ServerHost, serveCmd.Flags().Lookup("host")))

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on")
	lo.Must0(viper.BindPFlag(key.ServerPort, serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().StringP("media", "m", "", "Directory served as the media root")
	lo.Must0(viper.BindPFlag(key.ServerMediaDir, serveCmd.Flags().Lookup("media")))

	serveCmd.Flags().StringP("backend", "b", "", "Player backend (mpv or simulator)")
	lo.Must0(serveCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"mpv", "simulator"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerBackend, serveCmd.Flags().Lookup("backend")))

	serveCmd.Flags().String("api-key", "", "Require this bearer token from clients")
	lo.Must0(viper.BindPFlag(key.ServerAPIKey, serveCmd.Flags().Lookup("api-key")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the player and serve the remote control API",
	Long: `Start the player and serve the remote control API.

The server owns a single player for its whole lifetime. Every client command
is validated against the player's current state before it is executed.`,
	Example: "  mpvremote serve --port 5555 --media ~/Videos",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(log.SetupConsole())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		library := media.NewLibrary(where.Media(), where.Temp())
		handleErr(library.ResetTemp())

		engine, err := newEngine(ctx)
		handleErr(err)

		handle := player.NewHandle(
			engine,
			player.WithWaitTimeout(time.Duration(viper.GetInt(key.PlayerLoadTimeout))*time.Second),
		)
		defer func() {
			if err := handle.Close(); err != nil {
				log.Warnf("close player: %v", err)
			}
		}()

		go func() {
			select {
			case <-handle.Done():
				log.Error("player exited; commands will fail until the server is restarted")
			case <-ctx.Done():
			}
		}()

		controller := session.New(handle, library)
		srv := server.New(controller, server.Options{
			APIKey:         viper.GetString(key.ServerAPIKey),
			CorsOrigins:    viper.GetStringSlice(key.ServerCorsOrigins),
			MaxConnections: viper.GetInt(key.ServerMaxConnections),
		})

		if viper.GetBool(key.ServerWatchMedia) {
			go func() {
				if err := media.Watch(ctx, library.Root(), srv.Publish); err != nil {
					log.Warnf("watch %s: %v", library.Root(), err)
				}
			}()
		}

		addr := net.JoinHostPort(viper.GetString(key.ServerHost), strconv.Itoa(viper.GetInt(key.ServerPort)))
		log.WithFields(map[string]any{
			"addr":    addr,
			"media":   library.Root(),
			"backend": viper.GetString(key.PlayerBackend),
		}).Info("serving")

		handleErr(srv.Run(ctx, addr))
	},
}

func newEngine(ctx context.Context) (player.Engine, error) {
	switch backend := viper.GetString(key.PlayerBackend); backend {
	case "mpv":
		binary := viper.GetString(key.PlayerBinary)
		CheckDependencies(binary)

		return player.LaunchMPV(ctx, player.MPVOptions{
			Binary:     binary,
			Socket:     where.Socket(),
			Fullscreen: viper.GetBool(key.PlayerFullscreen),
			OnTop:      viper.GetBool(key.PlayerOnTop),
			Ytdl:       viper.GetBool(key.PlayerYtdl),
			IPCTimeout: time.Duration(viper.GetInt(key.PlayerIPCTimeout)) * time.Second,
		})
	case "simulator":
		sim := player.NewSimulator()
		go sim.Run(ctx, simulatorTick)
		return sim, nil
	default:
		return nil, fmt.Errorf("unknown player backend %q, expected mpv or simulator", backend)
	}
}
