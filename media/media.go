// Package media manages the files the server can play: the media root filled by uploads
// and the temp root that receives streamed files.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/log"
	"github.com/samber/lo"
)

var (
	// ErrExists is returned when an upload would overwrite a file.
	ErrExists = errors.New("file already exists")

	// ErrNotFound is returned when a referenced file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrOutsideRoot is returned for paths that escape the media and temp roots.
	ErrOutsideRoot = errors.New("path outside media root")

	// ErrInvalidName is returned for upload names that are not plain file names.
	ErrInvalidName = errors.New("invalid file name")
)

// Library resolves, lists and stores media files.
type Library struct {
	root string
	temp string
	now  func() time.Time
}

// NewLibrary returns a library over root, storing streamed files under temp.
func NewLibrary(root, temp string) *Library {
	return &Library{
		root: filepath.Clean(root),
		temp: filepath.Clean(temp),
		now:  time.Now,
	}
}

// Root returns the media root.
func (l *Library) Root() string {
	return l.root
}

// Temp returns the temp root.
func (l *Library) Temp() string {
	return l.temp
}

// List returns the names of regular files directly under the media root, sorted.
func (l *Library) List() ([]string, error) {
	infos, err := filesystem.API().ReadDir(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read media root: %w", err)
	}

	names := lo.FilterMap(infos, func(info os.FileInfo, _ int) (string, bool) {
		return info.Name(), info.Mode().IsRegular()
	})
	sort.Strings(names)
	return names, nil
}

// Upload stores r as name under the media root. Existing files are never overwritten.
func (l *Library) Upload(name string, r io.Reader) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	path := filepath.Join(l.root, clean)
	if exists, _ := filesystem.API().Exists(path); exists {
		return "", fmt.Errorf("%s: %w", clean, ErrExists)
	}

	if err := l.write(path, r); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", clean, ErrExists)
		}
		return "", err
	}

	log.Infof("uploaded %s", path)
	return clean, nil
}

// Stream stores r under the temp root with a time-based name that keeps the
// extension of name, and returns the absolute path for a follow-up play.
func (l *Library) Stream(name string, r io.Reader) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(clean))
	stamp := l.now()
	file := fmt.Sprintf("%d.%06d%s", stamp.Unix(), stamp.Nanosecond()/1000, ext)

	if err := filesystem.API().MkdirAll(l.temp, os.ModePerm); err != nil {
		return "", fmt.Errorf("create temp root: %w", err)
	}

	path := filepath.Join(l.temp, file)
	if err := l.write(path, r); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", file, ErrExists)
		}
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}

	log.Infof("received stream %s as %s", name, abs)
	return abs, nil
}

// Resolve maps a reference from a play request to an existing file.
// Relative references are taken from the media root; absolute ones must be
// inside the media or temp root.
func (l *Library) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty reference: %w", ErrNotFound)
	}

	var path string
	if filepath.IsAbs(ref) {
		path = filepath.Clean(ref)
		if !within(l.root, path) && !within(l.temp, path) {
			return "", fmt.Errorf("%s: %w", ref, ErrOutsideRoot)
		}
	} else {
		path = filepath.Join(l.root, ref)
		if !within(l.root, path) {
			return "", fmt.Errorf("%s: %w", ref, ErrOutsideRoot)
		}
	}

	info, err := filesystem.API().Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", ref, ErrNotFound)
	}

	return path, nil
}

// ResetTemp empties the temp root. Streamed files do not outlive a server run.
func (l *Library) ResetTemp() error {
	if err := filesystem.API().RemoveAll(l.temp); err != nil {
		return fmt.Errorf("remove temp root: %w", err)
	}
	if err := filesystem.API().MkdirAll(l.temp, os.ModePerm); err != nil {
		return fmt.Errorf("create temp root: %w", err)
	}
	return nil
}

func (l *Library) write(path string, r io.Reader) error {
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = filesystem.API().Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		_ = filesystem.API().Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

// cleanName accepts plain file names only. Client-side directories are dropped.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return base, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
