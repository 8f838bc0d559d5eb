package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/sihdash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.SessionCapacity, convey.ShouldEqual, 10_000)
				convey.So(cfg.TopN.States, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SIHDASH_ADDR", ":8080")
			_ = os.Setenv("SIHDASH_DATA_PATH", "/tmp/outcomes.csv")
			_ = os.Setenv("SIHDASH_SESSION_CAPACITY", "32")
			_ = os.Setenv("SIHDASH_TOP_N__THEMES", "7")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/outcomes.csv")
				convey.So(cfg.SessionCapacity, convey.ShouldEqual, 32)
				convey.So(cfg.TopN.Themes, convey.ShouldEqual, 7)
				convey.So(cfg.TopN.States, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
# dashboard
addr: ":9090"
data_path: "snapshot.csv"
max_chart_bars: 12
top_n:
  institutes: 5
unawarded_ps: ["SIH1"]
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SIHDASH_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values merge with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "snapshot.csv")
				convey.So(cfg.MaxChartBars, convey.ShouldEqual, 12)
				convey.So(cfg.TopN.Institutes, convey.ShouldEqual, 5)
				convey.So(cfg.TopN.Themes, convey.ShouldEqual, 10)
				convey.So(cfg.UnawardedPS, convey.ShouldResemble, []string{"SIH1"})
			})

			convey.Convey("Then env vars override the file", func() {
				_ = os.Setenv("SIHDASH_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataPath, convey.ShouldEqual, "snapshot.csv")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("SIHDASH_CONFIG", "/nonexistent/sihdash.yaml")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it returns a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is invalid", func() {
			tmpFile := createTempConfigFile("addr: [unclosed")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SIHDASH_CONFIG", tmpFile)

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a numeric env var is not a number", func() {
			_ = os.Setenv("SIHDASH_SESSION_CAPACITY", "lots")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When addr is empty", func() {
			tmpFile := createTempConfigFile(`addr: ""`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SIHDASH_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error naming the field", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Addr")
			})
		})

		convey.Convey("When the session capacity is zero", func() {
			_ = os.Setenv("SIHDASH_SESSION_CAPACITY", "0")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "SessionCapacity")
		})

		convey.Convey("When a top-n limit is negative", func() {
			cfg := config.New()
			cfg.TopN.Departments = -1
			err := config.Validate(cfg)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Departments")
		})

		convey.Convey("When the log level is unknown", func() {
			cfg := config.New()
			cfg.LogLevel = "verbose"
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "SIHDASH_") {
			_ = os.Unsetenv(name)
		}
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "sihdash-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
