// Package config registers every setting with viper. Values come from flags,
// MPVREMOTE_* environment variables, the TOML file and the defaults in Default,
// in that order.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps "server.api_key" to "server_api_key" before prefixing.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

const fileType = "toml"

// File returns the path of the config file, whether or not it exists.
func File() string {
	return filepath.Join(where.Config(), constant.App+"."+fileType)
}

func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType(fileType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", File(), err)
	}
	return nil
}

// Save writes the current values to File, creating it when missing.
func Save() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}
