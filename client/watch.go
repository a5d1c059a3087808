package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/server"
)

// Watch subscribes to /ws and calls fn for every pushed event until ctx is done
// or the connection drops. The first event is always the current status.
func (c *Client) Watch(ctx context.Context, fn func(server.Event)) error {
	target, err := c.socketURL()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("User-Agent", constant.UserAgent)
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return &StatusError{Status: resp.StatusCode, Message: err.Error()}
		}
		return fmt.Errorf("dial %s: %w", target, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		var event server.Event
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(event)
	}
}

func (c *Client) socketURL() (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
