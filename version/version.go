// Package version checks that a client and the server it talks to speak the same wire schema.
package version

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/where"
)

// Remote is the version information a server reports.
type Remote struct {
	Version string `json:"version"`
	Schema  int    `json:"schema"`
}

// HealthFetcher is implemented by *client.Client.
type HealthFetcher interface {
	Server() string
	Health(ctx context.Context) (client.Health, error)
}

var versionCacher *gache.Cache[map[string]Remote]

func cacher() *gache.Cache[map[string]Remote] {
	if versionCacher == nil {
		versionCacher = gache.New[map[string]Remote](&gache.Options{
			Path:       filepath.Join(where.Cache(), "servers.json"),
			Lifetime:   time.Hour * 24,
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return versionCacher
}

// Of returns the version of the server behind fetcher.
// Answers are cached per server for a day.
func Of(ctx context.Context, fetcher HealthFetcher) (Remote, error) {
	known, expired, err := cacher().Get()
	if err != nil {
		return Remote{}, err
	}
	if expired || known == nil {
		known = make(map[string]Remote)
	}

	if remote, ok := known[fetcher.Server()]; ok && remote.Version != "" {
		return remote, nil
	}

	health, err := fetcher.Health(ctx)
	if err != nil {
		return Remote{}, err
	}

	if health.Version == "" {
		return Remote{}, fmt.Errorf("server %s did not report a version", fetcher.Server())
	}

	remote := Remote{Version: health.Version, Schema: health.Schema}
	known[fetcher.Server()] = remote
	_ = cacher().Set(known)
	return remote, nil
}
