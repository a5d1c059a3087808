// Package draft stores the playlist a client is composing before sending it to the server.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/metafates/gache"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// ErrEmpty is returned when playing an empty draft.
var ErrEmpty = errors.New("draft is empty")

// ErrIndex is returned for an index outside the draft.
var ErrIndex = errors.New("index out of range")

// Sender sends a playlist to the server. *client.Client implements it.
type Sender interface {
	Playlist(ctx context.Context, items []string, replace bool, index int) (client.Response, error)
}

var (
	mu     sync.Mutex
	cacher *gache.Cache[[]string]
)

func cache() *gache.Cache[[]string] {
	if cacher == nil {
		cacher = gache.New[[]string](
			&gache.Options{
				Path:       where.Draft(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	}
	return cacher
}

func get() ([]string, error) {
	cached, expired, err := cache().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []string{}, nil
	}
	return cached, nil
}

// Items returns the draft in play order.
func Items() ([]string, error) {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

// Append adds items to the end of the draft, skipping blanks.
func Append(items ...string) ([]string, error) {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return nil, err
	}

	saved = append(saved, lo.Compact(items)...)
	return saved, cache().Set(saved)
}

// Remove deletes the item at index.
func Remove(index int) ([]string, error) {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(saved) {
		return saved, fmt.Errorf("%w: %d not in 0..%d", ErrIndex, index, len(saved)-1)
	}

	saved = slices.Delete(saved, index, index+1)
	return saved, cache().Set(saved)
}

// Clear empties the draft.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()
	return cache().Set([]string{})
}

// Play replaces the server playlist with the draft, starting at index.
func Play(ctx context.Context, sender Sender, index int) (client.Response, error) {
	items, err := Items()
	if err != nil {
		return client.Response{}, err
	}

	if len(items) == 0 {
		return client.Response{}, ErrEmpty
	}

	if index < 0 || index >= len(items) {
		return client.Response{}, fmt.Errorf("%w: %d not in 0..%d", ErrIndex, index, len(items)-1)
	}

	return sender.Playlist(ctx, items, true, index)
}
