package player

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mpvremote/mpvremote/log"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 250 * time.Millisecond
	quitGracePeriod   = 3 * time.Second
)

// MPVOptions configures how mpv is launched and talked to.
type MPVOptions struct {
	Binary     string
	Socket     string
	Fullscreen bool
	OnTop      bool
	Ytdl       bool
	IPCTimeout time.Duration
}

// MPV implements the Engine interface using mpv's JSON-IPC protocol.
// State is kept current from observed property changes, so reads never touch the socket.
type MPV struct {
	opts   MPVOptions
	cmd    *exec.Cmd
	ipc    *ipcConn
	mu     sync.RWMutex
	state  State
	notify notifier
	exited chan struct{}
	once   sync.Once
}

// LaunchMPV starts an idle mpv process with an IPC server and attaches to it.
func LaunchMPV(ctx context.Context, opts MPVOptions) (*MPV, error) {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}

	// a stale socket from a crashed run would make waitForSocket succeed too early
	_ = os.Remove(opts.Socket)

	cmd := exec.Command(opts.Binary, launchArgs(opts)...)

	// Detach from parent process group so terminal signals reach the server first.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %s", ErrUnavailable, opts.Binary, err)
	}

	processExited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(processExited)
	}()

	if err := waitForSocket(ctx, opts.Socket, processExited); err != nil {
		select {
		case <-processExited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	m, err := DialMPV(ctx, opts)
	if err != nil {
		_ = killProcess(cmd)
		return nil, err
	}
	m.cmd = cmd

	go func() {
		<-processExited
		log.Warn("mpv process exited")
		m.terminate()
	}()

	log.Infof("mpv started with pid %d on %s", cmd.Process.Pid, opts.Socket)
	return m, nil
}

// DialMPV attaches to an mpv instance already listening on opts.Socket.
func DialMPV(ctx context.Context, opts MPVOptions) (*MPV, error) {
	m := &MPV{
		opts:   opts,
		state:  Idle(),
		exited: make(chan struct{}),
	}

	conn, err := dialIPC(ctx, opts.Socket, opts.IPCTimeout, m.handleEvent)
	if err != nil {
		return nil, err
	}
	m.ipc = conn

	go func() {
		<-conn.done()
		m.terminate()
	}()

	for i, name := range observedProperties {
		if _, err := conn.call(ctx, "observe_property", i+1, name); err != nil {
			conn.close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	return m, nil
}

func launchArgs(opts MPVOptions) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=no",
		"--osc=no",
		fmt.Sprintf("--input-ipc-server=%s", opts.Socket),
		fmt.Sprintf("--ytdl=%s", yesNo(opts.Ytdl)),
	}

	if opts.Fullscreen {
		args = append(args, "--fullscreen")
	}
	if opts.OnTop {
		args = append(args, "--ontop")
	}

	return args
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func waitForSocket(ctx context.Context, socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

func (m *MPV) handleEvent(msg ipcMessage) {
	switch msg.Event {
	case "property-change":
		m.mu.Lock()
		applyProperty(&m.state, msg.Name, msg.Data)
		m.mu.Unlock()
		m.notify.broadcast()
	case "end-file", "file-loaded", "playback-restart", "idle":
		log.Debugf("mpv event: %s", msg.Event)
	}
}

func (m *MPV) command(ctx context.Context, command ...any) error {
	select {
	case <-m.exited:
		return ErrUnavailable
	default:
	}

	_, err := m.ipc.call(ctx, command...)
	return err
}

func (m *MPV) Load(ctx context.Context, target string, mode LoadMode) error {
	safe, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEngine, err)
	}
	return m.command(ctx, "loadfile", safe, string(mode))
}

func (m *MPV) Stop(ctx context.Context) error {
	return m.command(ctx, "stop")
}

func (m *MPV) Set(ctx context.Context, property string, value any) error {
	return m.command(ctx, "set_property", property, value)
}

func (m *MPV) Seek(ctx context.Context, percent float64) error {
	return m.command(ctx, "seek", percent, "absolute-percent")
}

func (m *MPV) PlaylistClear(ctx context.Context) error {
	return m.command(ctx, "playlist-clear")
}

func (m *MPV) PlaylistPlayIndex(ctx context.Context, i int) error {
	return m.command(ctx, "playlist-play-index", i)
}

func (m *MPV) PlaylistNext(ctx context.Context) error {
	return m.command(ctx, "playlist-next")
}

func (m *MPV) PlaylistPrev(ctx context.Context) error {
	return m.command(ctx, "playlist-prev")
}

func (m *MPV) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

func (m *MPV) Subscribe() (<-chan struct{}, func()) {
	return m.notify.subscribe()
}

// Wait returns a channel that is closed when mpv exits or the IPC connection drops.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Close asks mpv to quit, kills it if it does not, and removes the socket.
func (m *MPV) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), quitGracePeriod)
	defer cancel()

	_ = m.command(ctx, "quit")

	if m.cmd != nil {
		select {
		case <-m.exited:
		case <-time.After(quitGracePeriod):
			_ = killProcess(m.cmd)
		}
		_ = os.Remove(m.opts.Socket)
	}

	m.ipc.close()
	m.terminate()
	return nil
}

func (m *MPV) terminate() {
	m.once.Do(func() {
		close(m.exited)
		m.notify.broadcast()
	})
}

// sanitizeMediaTarget validates that a target is safe to hand to mpv:
// http(s) URLs pass through, anything else is treated as a local path.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", errors.New("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", errors.New("invalid control characters in target")
	}

	if strings.HasPrefix(t, "-") {
		return "", errors.New("target must not start with '-'")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}
