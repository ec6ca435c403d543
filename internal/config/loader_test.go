package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/scoutline/pennant/internal/config"
)

func clearConfigEnvVars() {
	for _, k := range []string{
		"PENNANT_CONFIG",
		"PENNANT_ADDR",
		"PENNANT_WORKER_COUNT",
		"PENNANT_TRAILING_WINDOW_DAYS",
		"PENNANT_PREFER_ML_BASELINE",
	} {
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TrailingWindowDays, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PENNANT_ADDR", ":8080")
			_ = os.Setenv("PENNANT_WORKER_COUNT", "16")
			_ = os.Setenv("PENNANT_PREFER_ML_BASELINE", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.PreferMLBaseline, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading from a YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":9191"
trailing_window_days: 45
trend_window_days: 14
min_pitch_sample_hitter: 120
`
			path := filepath.Join(t.TempDir(), "pennant.yaml")
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("PENNANT_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9191")
				convey.So(cfg.TrailingWindowDays, convey.ShouldEqual, 45)
				convey.So(cfg.TrendWindowDays, convey.ShouldEqual, 14)
				convey.So(cfg.MinPitchSampleHitter, convey.ShouldEqual, 120)
			})
		})

		convey.Convey("When env vars layer over a file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "pennant.yaml")
			convey.So(os.WriteFile(path, []byte("addr: \":9191\"\n"), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("PENNANT_CONFIG", path)
			_ = os.Setenv("PENNANT_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config file is invalid", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "broken.yaml")
			convey.So(os.WriteFile(path, []byte(": not yaml"), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("PENNANT_CONFIG", path)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})

		convey.Convey("When env makes the config invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PENNANT_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
