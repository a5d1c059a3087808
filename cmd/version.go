package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"accent": style.Fg(color.Purple),
}).Parse(`{{ accent "▇▇▇" }} {{ accent .App }}

  {{ faint "Version" }}        {{ bold .Version }}
  {{ faint "Status schema" }}  {{ bold .Schema }}
  {{ faint "Git commit" }}     {{ bold .Revision }}
  {{ faint "Built" }}          {{ bold .BuiltAt }} {{ faint "by" }} {{ bold .BuiltBy }}
  {{ faint "Platform" }}       {{ bold .Platform }}
`))

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
	versionCmd.SetOut(os.Stdout)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]any{
			"App":      constant.App,
			"Version":  constant.Version,
			"Schema":   constant.SchemaVersion,
			"Revision": constant.Revision,
			"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
			"BuiltBy":  constant.BuiltBy,
			"Platform": runtime.GOOS + "/" + runtime.GOARCH,
		}))
	},
}
