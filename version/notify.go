package version

import (
	"context"
	"fmt"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/key"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/spf13/viper"
)

// Compatible reports whether a client of this build can talk to remote.
// The schema must match and the major versions must agree.
func Compatible(remote Remote) (bool, error) {
	if remote.Schema != constant.SchemaVersion {
		return false, nil
	}

	ours, err := parseVersion(constant.Version)
	if err != nil {
		return false, err
	}

	theirs, err := parseVersion(remote.Version)
	if err != nil {
		return false, err
	}

	return ours.major == theirs.major, nil
}

// Notify prints a warning when the server runs an incompatible version.
func Notify(ctx context.Context, fetcher HealthFetcher) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking server version...", icon.Get(icon.Progress)))
	remote, err := Of(ctx, fetcher)
	erase()
	if err != nil {
		return
	}

	if ok, err := Compatible(remote); err != nil || ok {
		return
	}

	relation := "a different"
	if comp, err := Compare(remote.Version, constant.Version); err == nil {
		switch comp {
		case 1:
			relation = "a newer"
		case -1:
			relation = "an older"
		}
	}

	fmt.Printf(`
%s Server %s runs %s version %s
%s

`,
		style.Fg(color.Yellow)("▇▇▇"),
		style.Bold(fetcher.Server()),
		relation,
		style.Bold(fmt.Sprintf("%s (schema %d)", remote.Version, remote.Schema)),
		style.Faint(fmt.Sprintf("You're on %s (schema %d); some commands may fail", constant.Version, constant.SchemaVersion)),
	)
}
