// Package network provides the HTTP clients the remote uses to reach the server.
package network

import (
	"net/http"
	"time"
)

// transport is shared by every client so connections to the server are reused.
var transport = newTransport()

// NewClient returns a client over the shared transport. A zero timeout means
// no overall limit, which uploads of large media files need.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// newTransport initializes a tuned http.Transport for a single remote host.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 90 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}
