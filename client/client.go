// Package client is the typed requester for the remote server's HTTP surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/network"
	"github.com/mpvremote/mpvremote/session"
	"github.com/mpvremote/mpvremote/status"
	"github.com/mpvremote/mpvremote/uri"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var e *StatusError
	return errors.As(err, &e) && e.Status == status
}

// Response is the body of an accepted command.
type Response struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	File    string   `json:"file,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// Client talks to one server.
type Client struct {
	base   string
	token  string
	http   *http.Client
	upload *http.Client
}

// New returns a client for server. An empty token disables authentication.
func New(server, token string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(server, "/"),
		token:  token,
		http:   network.NewClient(timeout),
		upload: network.NewClient(0),
	}
}

// Server returns the base URL of the server.
func (c *Client) Server() string {
	return c.base
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(hc *http.Client, req *http.Request, out any) (int, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg Response
		if json.Unmarshal(data, &msg) != nil || msg.Message == "" {
			msg.Message = strings.TrimSpace(string(data))
		}
		return resp.StatusCode, &StatusError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func (c *Client) command(ctx context.Context, path string, query url.Values, body io.Reader) (Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, query, body)
	if err != nil {
		return Response{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var res Response
	code, err := c.do(c.http, req, &res)
	res.Status = code
	return res, err
}

// Play plays ref, a path relative to the media root when local is set or a remote stream otherwise.
func (c *Client) Play(ctx context.Context, ref string, local, replace bool) (Response, error) {
	q := url.Values{}
	q.Set("uri", uri.Encode(ref))
	q.Set("local", strconv.FormatBool(local))
	q.Set("replace", strconv.FormatBool(replace))
	return c.command(ctx, "/play", q, nil)
}

func (c *Client) Stop(ctx context.Context) (Response, error) {
	return c.command(ctx, "/stop", nil, nil)
}

func (c *Client) Pause(ctx context.Context) (Response, error) {
	return c.command(ctx, "/pause", nil, nil)
}

func (c *Client) Mute(ctx context.Context) (Response, error) {
	return c.command(ctx, "/mute", nil, nil)
}

func (c *Client) Fullscreen(ctx context.Context) (Response, error) {
	return c.command(ctx, "/fullscreen", nil, nil)
}

func (c *Client) Repeat(ctx context.Context) (Response, error) {
	return c.command(ctx, "/repeat", nil, nil)
}

func (c *Client) Next(ctx context.Context) (Response, error) {
	return c.command(ctx, "/next", nil, nil)
}

func (c *Client) Previous(ctx context.Context) (Response, error) {
	return c.command(ctx, "/previous", nil, nil)
}

// Seek moves to an absolute percentage.
func (c *Client) Seek(ctx context.Context, percent float64) (Response, error) {
	q := url.Values{}
	q.Set("percent_pos", strconv.FormatFloat(percent, 'f', -1, 64))
	return c.command(ctx, "/seek", q, nil)
}

// Volume sets the volume. The server ignores values outside 0..100.
func (c *Client) Volume(ctx context.Context, volume int) (Response, error) {
	q := url.Values{}
	q.Set("volume", strconv.Itoa(volume))
	return c.command(ctx, "/volume", q, nil)
}

// Playlist sends a playlist; items are media root names or remote streams.
func (c *Client) Playlist(ctx context.Context, items []string, replace bool, index int) (Response, error) {
	body, err := json.Marshal(session.PlaylistRequest{Items: items, New: replace, Index: index})
	if err != nil {
		return Response{}, err
	}
	return c.command(ctx, "/playlist", nil, bytes.NewReader(body))
}

// Status fetches the current snapshot.
func (c *Client) Status(ctx context.Context) (status.Snapshot, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/status", nil, nil)
	if err != nil {
		return status.Snapshot{}, err
	}

	var snap status.Snapshot
	_, err = c.do(c.http, req, &snap)
	return snap, err
}

// List returns the files in the server's media root.
func (c *Client) List(ctx context.Context) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/list", nil, nil)
	if err != nil {
		return nil, err
	}

	var res Response
	code, err := c.do(c.http, req, &res)
	if err != nil {
		return nil, err
	}
	if code == http.StatusNoContent {
		return []string{}, nil
	}
	return res.Files, nil
}

// Upload sends the local file at path to the media root.
func (c *Client) Upload(ctx context.Context, path string) (Response, error) {
	return c.send(ctx, "/upload", path)
}

// Stream sends the local file at path to the temp root. Response.File is the path to play.
func (c *Client) Stream(ctx context.Context, path string) (Response, error) {
	return c.send(ctx, "/stream", path)
}

// send streams path as the multipart field "file" without buffering it in memory.
func (c *Client) send(ctx context.Context, endpoint, path string) (Response, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return Response{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, nil, pr)
	if err != nil {
		pr.CloseWithError(err)
		return Response{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res Response
	code, err := c.do(c.upload, req, &res)
	pr.CloseWithError(io.ErrClosedPipe)
	res.Status = code
	return res, err
}

// Health is the body of GET /health.
type Health struct {
	Status  string `json:"status"`
	Phase   string `json:"phase"`
	Version string `json:"version"`
	Schema  int    `json:"schema"`
}

// Health reports the server's phase and version.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return Health{}, err
	}

	var h Health
	_, err = c.do(c.http, req, &h)
	return h, err
}
