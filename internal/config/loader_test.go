package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/raceboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RACEBOARD_CONFIG",
		"RACEBOARD_LOG_LEVEL",
		"RACEBOARD_ADDR",
		"RACEBOARD_DATA_FILE",
		"RACEBOARD_LOCK_TIMEOUT_MS",
		"RACEBOARD_ADMIN_CODE",
		"RACEBOARD_SCENARIOS_FILE",
		"RACEBOARD_MAX_ROUND",
	} {
		os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataFile, convey.ShouldEqual, "submissions_v2.csv")
				convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.AdminCode, convey.ShouldEqual, config.DefaultAdminCode)
				convey.So(cfg.MaxRound, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("RACEBOARD_ADDR", ":7070")
			t.Setenv("RACEBOARD_DATA_FILE", "/var/lib/raceboard/store.csv")
			t.Setenv("RACEBOARD_LOCK_TIMEOUT_MS", "250")
			t.Setenv("RACEBOARD_ADMIN_CODE", "classroom-42")
			t.Setenv("RACEBOARD_MAX_ROUND", "12")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment values win over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataFile, convey.ShouldEqual, "/var/lib/raceboard/store.csv")
				convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 250)
				convey.So(cfg.AdminCode, convey.ShouldEqual, "classroom-42")
				convey.So(cfg.MaxRound, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			path := filepath.Join(t.TempDir(), "raceboard.yaml")
			contents := "addr: \":6060\"\nlock_timeout_ms: 900\nscenarios_file: class.json\n"
			convey.So(os.WriteFile(path, []byte(contents), 0o644), convey.ShouldBeNil)
			t.Setenv("RACEBOARD_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 900)
				convey.So(cfg.ScenariosFile, convey.ShouldEqual, "class.json")
				convey.So(cfg.DataFile, convey.ShouldEqual, "submissions_v2.csv")
			})

			convey.Convey("And environment values override the file", func() {
				t.Setenv("RACEBOARD_ADDR", ":5050")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
				convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 900)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			t.Setenv("RACEBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with ErrLoadConfig", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			t.Setenv("RACEBOARD_LOCK_TIMEOUT_MS", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a required value is emptied out", func() {
			t.Setenv("RACEBOARD_DATA_FILE", "")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
