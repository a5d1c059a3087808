package config

import (
	"errors"
	"testing"

	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.ServerPort), ShouldEqual, 5555)
			So(viper.GetString(key.PlayerBackend), ShouldEqual, "mpv")
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
			So(len(EnvExposed), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("server.media_dir")
			So(result, ShouldEqual, "server_media_dir")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.ServerPort]

		Convey("Env should be prefixed with the app name", func() {
			So(field.Env(), ShouldEqual, "MPVREMOTE_SERVER_PORT")
		})

		Convey("MarshalJSON should expose the type name", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
			So(string(data), ShouldContainSubstring, `"key":"server.port"`)
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.ServerPort)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Given a fresh config directory", t, func() {
		filesystem.SetMemMapFs()
		So(Setup(), ShouldBeNil)

		Convey("Save should create the config file", func() {
			viper.Set(key.ServerPort, 6000)
			So(Save(), ShouldBeNil)
			So(lo.Must(filesystem.API().Exists(File())), ShouldBeTrue)

			Convey("And a second save should overwrite it", func() {
				viper.Set(key.ServerPort, 6001)
				So(Save(), ShouldBeNil)

				data := lo.Must(filesystem.API().ReadFile(File()))
				So(string(data), ShouldContainSubstring, "6001")
			})
		})

		Reset(func() {
			viper.Set(key.ServerPort, 5555)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should convert to the default's type", func() {
			So(lo.Must(Parse(key.ServerPort, []string{"8080"})), ShouldEqual, 8080)
			So(lo.Must(Parse(key.PlayerFullscreen, []string{"true"})), ShouldEqual, true)
			So(lo.Must(Parse(key.ServerHost, []string{"127.0.0.1"})), ShouldEqual, "127.0.0.1")
			So(lo.Must(Parse(key.ServerCorsOrigins, []string{"a", "b"})), ShouldResemble, []string{"a", "b"})
		})

		Convey("Should reject values of the wrong type", func() {
			_, err := Parse(key.ServerPort, []string{"many"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerYtdl, []string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject several values for a scalar key", func() {
			_, err := Parse(key.ServerPort, []string{"1", "2"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should report unknown keys", func() {
			_, err := Parse("server.prot", []string{"1"})
			var unknown *UnknownKeyError
			So(errors.As(err, &unknown), ShouldBeTrue)
			So(unknown.Key, ShouldEqual, "server.prot")
		})
	})
}
