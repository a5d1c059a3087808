package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mpvremote/mpvremote/log"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcMessage is any JSON line received from mpv's IPC socket: a reply
// (request_id set) or an event (event set).
type ipcMessage struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
	Name      string `json:"name"`
	ID        int64  `json:"id"`
}

const (
	defaultIPCTimeout = 5 * time.Second
	maxLineSize       = 1 << 20
)

// ipcConn multiplexes commands and events over one persistent mpv connection.
// Replies are matched to callers by request_id.
type ipcConn struct {
	conn    net.Conn
	timeout time.Duration
	onEvent func(ipcMessage)

	writeMu sync.Mutex
	mu      sync.Mutex
	pending map[int64]chan ipcMessage
	nextID  atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
}

func dialIPC(ctx context.Context, socketPath string, timeout time.Duration, onEvent func(ipcMessage)) (*ipcConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %s", ErrUnavailable, socketPath, err)
	}

	if timeout <= 0 {
		timeout = defaultIPCTimeout
	}

	c := &ipcConn{
		conn:    conn,
		timeout: timeout,
		onEvent: onEvent,
		pending: make(map[int64]chan ipcMessage),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// call sends one command and waits for its reply.
func (c *ipcConn) call(ctx context.Context, command ...any) (any, error) {
	id := c.nextID.Add(1)
	reply := make(chan ipcMessage, 1)

	c.mu.Lock()
	c.pending[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	c.writeMu.Lock()
	_, err = c.conn.Write(append(payload, '\n'))
	c.writeMu.Unlock()
	if err != nil {
		c.close()
		return nil, fmt.Errorf("%w: write: %s", ErrUnavailable, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case msg := <-reply:
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("%w: %v: %s", ErrEngine, command[0], msg.Error)
		}
		return msg.Data, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: no reply to %v", ErrTimeout, command[0])
	case <-c.closed:
		return nil, fmt.Errorf("%w: connection closed", ErrUnavailable)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readLoop dispatches replies to waiting callers and events to onEvent until the connection drops.
func (c *ipcConn) readLoop() {
	defer c.close()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Debugf("skipping unparseable ipc line: %s", line)
			continue
		}

		if msg.Event != "" {
			if c.onEvent != nil {
				c.onEvent(msg)
			}
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[msg.RequestID]
		c.mu.Unlock()
		if ok {
			reply <- msg
		}
	}

	if err := scanner.Err(); err != nil {
		log.Warnf("ipc read error: %v", err)
	}
}

func (c *ipcConn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

// done is closed once the connection is gone.
func (c *ipcConn) done() <-chan struct{} {
	return c.closed
}
