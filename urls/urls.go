// Package urls keeps the remote streams a user has entered, one per line.
package urls

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/uri"
	"github.com/mpvremote/mpvremote/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// ErrNotRemote is returned when adding something that is not an http(s) URL.
var ErrNotRemote = errors.New("not a remote url")

// List is an ordered set of URLs backed by a newline-delimited file.
// Every mutation rewrites the whole file.
type List struct {
	path string

	mu    sync.RWMutex
	items []string
}

// Load reads the list at the default location.
func Load() (*List, error) {
	return LoadFrom(where.URLs())
}

// LoadFrom reads the list at path. A missing file is an empty list.
func LoadFrom(path string) (*List, error) {
	l := &List{path: path, items: []string{}}

	data, err := filesystem.API().ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lines := lo.Map(strings.Split(string(data), "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	l.items = lo.Uniq(lo.Compact(lines))
	return l, nil
}

// Path of the backing file.
func (l *List) Path() string {
	return l.path
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Contains reports whether u is saved.
func (l *List) Contains(u string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.items, strings.TrimSpace(u))
}

// Add appends u unless it is already saved. It reports whether the list changed.
func (l *List) Add(u string) (bool, error) {
	u = strings.TrimSpace(u)
	if !uri.IsRemote(u) || strings.ContainsAny(u, "\r\n") {
		return false, fmt.Errorf("%w: %q", ErrNotRemote, u)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.items, u) {
		return false, nil
	}

	l.items = append(l.items, u)
	if err := l.save(); err != nil {
		l.items = l.items[:len(l.items)-1]
		return false, err
	}
	return true, nil
}

// Remove deletes u. It reports whether the list changed.
func (l *List) Remove(u string) (bool, error) {
	u = strings.TrimSpace(u)

	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.Index(l.items, u)
	if i < 0 {
		return false, nil
	}

	prev := l.items
	l.items = slices.Delete(slices.Clone(l.items), i, i+1)
	if err := l.save(); err != nil {
		l.items = prev
		return false, err
	}
	return true, nil
}

// Clear empties the list.
func (l *List) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.items
	l.items = []string{}
	if err := l.save(); err != nil {
		l.items = prev
		return err
	}
	return nil
}

// Filter returns the saved URLs fuzzily matching query, best match first.
// An empty query returns everything in insertion order.
func (l *List) Filter(query string) []string {
	items := l.Items()
	if query == "" {
		return items
	}

	ranks := fuzzy.RankFindNormalizedFold(query, items)
	sort.Stable(ranks)
	return lo.Map(ranks, func(r fuzzy.Rank, _ int) string {
		return r.Target
	})
}

func (l *List) save() error {
	if err := filesystem.API().MkdirAll(filepath.Dir(l.path), os.ModePerm); err != nil {
		return err
	}

	var b strings.Builder
	for _, item := range l.items {
		b.WriteString(item)
		b.WriteByte('\n')
	}

	if err := filesystem.API().WriteFile(l.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", l.path, err)
	}
	return nil
}
