// Package icon renders the symbols used by the CLI and the remote in the
// variant chosen by icons.variant: emoji, nerd-font glyphs, plain ASCII,
// kaomoji or unicode squares.
package icon

import (
	"github.com/mpvremote/mpvremote/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// in returns the symbol for variant. Unknown variants render as plain so a
// typo in the config never blanks the status line.
func (d *iconDef) in(variant string) string {
	switch variant {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get renders i in the configured variant, or an empty string for an unregistered icon.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.in(viper.GetString(key.IconsVariant))
}
