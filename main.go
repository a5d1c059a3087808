// Package main is the entry point for mpvremote.
package main

import (
	"github.com/mpvremote/mpvremote/cmd"
	"github.com/mpvremote/mpvremote/config"
	"github.com/mpvremote/mpvremote/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
