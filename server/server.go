// Package server exposes the session controller over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/session"
	"github.com/rs/cors"
	"github.com/samber/lo"
	"golang.org/x/net/netutil"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// APIKey enables bearer authentication when set.
	APIKey string
	// CorsOrigins lists the origins allowed to call the server from a browser.
	CorsOrigins []string
	// MaxConnections caps simultaneous connections; zero means unlimited.
	MaxConnections int
}

// Server is the HTTP command surface of the remote.
type Server struct {
	opts    Options
	handler http.Handler
	hub     *hub
}

// New builds the router for controller.
func New(controller *session.Controller, opts Options) *Server {
	if len(opts.CorsOrigins) == 0 {
		opts.CorsOrigins = []string{"*"}
	}

	allowOrigin := func(origin string) bool {
		return lo.Contains(opts.CorsOrigins, "*") || lo.Contains(opts.CorsOrigins, origin)
	}

	s := &Server{
		opts: opts,
		hub:  newHub(controller, allowOrigin),
	}
	h := &handlers{controller: controller}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	if opts.APIKey != "" {
		r.Use(apiKeyMiddleware(opts.APIKey))
	}

	post := func(path string, fn http.HandlerFunc) {
		r.HandleFunc(path, fn).Methods(http.MethodPost)
		r.HandleFunc(path+"/", fn).Methods(http.MethodPost)
	}

	post("/play", h.play)
	post("/stop", h.stop)
	post("/pause", h.pause)
	post("/mute", h.mute)
	post("/fullscreen", h.fullscreen)
	post("/repeat", h.repeat)
	post("/seek", h.seek)
	post("/volume", h.volume)
	post("/playlist", h.playlist)
	post("/next", h.next)
	post("/previous", h.previous)
	post("/upload", h.upload)
	post("/stream", h.stream)

	r.HandleFunc("/status", h.status).Methods(http.MethodGet)
	r.HandleFunc("/list", h.list).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.hub.serve).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "no such endpoint")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})
	s.handler = corsHandler.Handler(r)

	return s
}

// Handler returns the root handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Publish forwards a media root change to websocket subscribers.
func (s *Server) Publish(change media.Change) {
	s.hub.publish(change)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	return s.Serve(ctx, listener)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.opts.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.opts.MaxConnections)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", listener.Addr())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
