// Package config loads the canvasctl settings file: the API endpoint and
// token plus the per-course metadata (course id, default directories,
// source document).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Course is the per-course section of the settings file.
type Course struct {
	CourseID         int    `mapstructure:"course_id"`
	Dir              string `mapstructure:"dir"`
	LocalDefaultDir  string `mapstructure:"local_default_dir"`
	CanvasDefaultDir string `mapstructure:"canvas_default_dir"`
	Source           string `mapstructure:"source"`
}

// Config is the full settings surface.
type Config struct {
	BaseURL     string            `mapstructure:"base_url"`
	AccessToken string            `mapstructure:"access_token"`
	Courses     map[string]Course `mapstructure:"courses"`
}

// Load reads the settings from path, or from canvas.{yaml,json} in the
// working directory when path is empty. The access token may come from
// the CANVAS_ACCESS_TOKEN environment variable instead of the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CANVAS")
	v.BindEnv("access_token")
	v.SetDefault("access_token", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("canvas")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/canvasctl")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", v.ConfigFileUsed(), err)
	}
	// The environment wins over the file.
	if tok := v.GetString("access_token"); tok != "" {
		cfg.AccessToken = tok
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s: base_url is required", v.ConfigFileUsed())
	}
	return &cfg, nil
}

// Course returns the named course section. With an empty name and exactly
// one configured course, that course is returned.
func (c *Config) Course(name string) (*Course, error) {
	if name == "" {
		if len(c.Courses) == 1 {
			for _, course := range c.Courses {
				return &course, nil
			}
		}
		return nil, fmt.Errorf("a course name is required (%d courses configured)", len(c.Courses))
	}
	course, ok := c.Courses[name]
	if !ok {
		return nil, fmt.Errorf("course %q is not configured", name)
	}
	return &course, nil
}
