// Package config loads runtime configuration from a config file, environment
// variables and built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-starfield/internal/photometry"
	"github.com/litescript/ls-starfield/internal/scene"
)

// CameraConfig is the optional initial camera pose override.
type CameraConfig struct {
	Radius float64 `mapstructure:"radius"`
	Theta  float64 `mapstructure:"theta"`
	Phi    float64 `mapstructure:"phi"`
}

// Config holds all runtime configuration for a starfield session.
// Values are populated from .ls-starfield.yaml, LS_STARFIELD_* env vars, and
// CLI flags.
type Config struct {
	CatalogURL    string        `mapstructure:"catalog_url"`
	CatalogFile   string        `mapstructure:"catalog_file"`
	MaxStars      int           `mapstructure:"max_stars"`
	MaxDistancePc float64       `mapstructure:"max_distance_pc"`
	Refresh       time.Duration `mapstructure:"refresh"`
	Bands         []string      `mapstructure:"bands"`
	Camera        CameraConfig  `mapstructure:"camera"`
	LogLevel      string        `mapstructure:"log_level"`
}

// Load reads configuration, applying built-in defaults for any values not set
// by config file, environment, or flags. An empty path skips the config file.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("catalog_url", "")
	v.SetDefault("catalog_file", "")
	v.SetDefault("max_stars", 300)
	v.SetDefault("max_distance_pc", 30.0)
	v.SetDefault("refresh", 5*time.Minute)
	v.SetDefault("bands", []string{"blue", "white", "yellow/red"})
	v.SetDefault("camera.radius", scene.DefaultOrbitRadius)
	v.SetDefault("camera.theta", scene.DefaultTheta)
	v.SetDefault("camera.phi", scene.DefaultPhi)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("LS_STARFIELD")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// BandSet converts the configured band names into a filter set. Unknown
// names are ignored; an empty or fully unknown list falls back to all bands
// so the field never renders empty by accident.
func (c Config) BandSet() scene.BandSet {
	set := scene.BandSet{}
	any := false
	for _, name := range c.Bands {
		if b, ok := photometry.ParseBand(name); ok {
			set = set.With(b, true)
			any = true
		}
	}
	if !any {
		return scene.AllBands()
	}
	return set
}

// CameraState converts the configured pose into an initial camera state.
// Out-of-range values are clamped to the orbit limits.
func (c Config) CameraState() scene.CameraState {
	cam := scene.NewCameraState()
	if c.Camera.Radius > 0 {
		targets := scene.NewCameraTargets()
		targets.SetRadius(c.Camera.Radius)
		cam.OrbitRadius = targets.Radius
	}
	if c.Camera.Theta != 0 {
		cam.Theta = c.Camera.Theta
	}
	if c.Camera.Phi != 0 {
		cam.Phi = c.Camera.Phi
		cam.Rotate(0, 0) // reapply the pole clamp
	}
	return cam
}
