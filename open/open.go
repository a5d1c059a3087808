// Package open hands urls to the desktop's default handler, usually a browser.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/uri"
)

var ErrNotRemote = errors.New("only http(s) urls can be opened")

// URL opens u without waiting for the handler to exit.
func URL(u string) error {
	if !uri.IsRemote(u) {
		return fmt.Errorf("%w: %s", ErrNotRemote, u)
	}

	name, args, ok := launcher(runtime.GOOS, u)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() { _ = cmd.Wait() }()
	return nil
}

func launcher(goos, u string) (name string, args []string, ok bool) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return rundll, []string{"url.dll,FileProtocolHandler", u}, true
	case constant.Darwin:
		return "open", []string{u}, true
	case constant.Linux:
		return "xdg-open", []string{u}, true
	case constant.Android:
		return "termux-open", []string{u}, true
	default:
		return "", nil, false
	}
}
