package config_test

import (
	"testing"

	"github.com/okian/raceboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataFile, convey.ShouldEqual, "submissions_v2.csv")
			convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(cfg.AdminCode, convey.ShouldEqual, config.DefaultAdminCode)
			convey.So(cfg.ScenariosFile, convey.ShouldEqual, "scenarios.json")
			convey.So(cfg.MaxRound, convey.ShouldEqual, 50)
		})
	})
}
