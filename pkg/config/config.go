package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-go-golems/reptimer/pkg/tracker"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "~/.config/reptimer/config.yaml"

type Config struct {
	Timer   TimerConfig   `yaml:"timer"`
	Session SessionConfig `yaml:"session"`
	Alert   AlertConfig   `yaml:"alert"`
	Log     LogConfig     `yaml:"log"`
}

type TimerConfig struct {
	// Duration is the rest countdown length in seconds.
	Duration int `yaml:"duration"`
}

type SessionConfig struct {
	// Default is the exercise selected at startup.
	Default string `yaml:"default"`
}

type AlertConfig struct {
	Bell   bool   `yaml:"bell"`
	Sound  bool   `yaml:"sound"`
	Player string `yaml:"player,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Config {
	return &Config{
		Timer:   TimerConfig{Duration: tracker.DefaultDuration},
		Session: SessionConfig{Default: string(tracker.ChestPress)},
		Alert:   AlertConfig{Bell: true, Sound: true},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "reptimer.log"),
		},
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. An empty path means DefaultPath, which is
// allowed to be missing. Env vars use the prefix REPTIMER_:
//
//	REPTIMER_TIMER_DURATION, REPTIMER_SESSION_DEFAULT,
//	REPTIMER_ALERT_BELL, REPTIMER_ALERT_SOUND, REPTIMER_ALERT_PLAYER,
//	REPTIMER_LOG_LEVEL, REPTIMER_LOG_FILE
//
// The result is not validated. Callers layer their own overrides on top and
// then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding config path %s", path)
	}

	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", expanded)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrap(err, "reading config file")
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("REPTIMER_TIMER_DURATION"); v != "" {
		d, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(err, "REPTIMER_TIMER_DURATION")
		}
		cfg.Timer.Duration = d
	}
	if v := os.Getenv("REPTIMER_SESSION_DEFAULT"); v != "" {
		cfg.Session.Default = v
	}
	if v := os.Getenv("REPTIMER_ALERT_BELL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "REPTIMER_ALERT_BELL")
		}
		cfg.Alert.Bell = b
	}
	if v := os.Getenv("REPTIMER_ALERT_SOUND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "REPTIMER_ALERT_SOUND")
		}
		cfg.Alert.Sound = b
	}
	if v := os.Getenv("REPTIMER_ALERT_PLAYER"); v != "" {
		cfg.Alert.Player = v
	}
	if v := os.Getenv("REPTIMER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("REPTIMER_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Validate checks the fully layered config.
func (c *Config) Validate() error {
	if c.Timer.Duration <= 0 {
		return errors.Errorf("timer.duration must be positive, got %d", c.Timer.Duration)
	}
	if _, err := tracker.ParseExercise(c.Session.Default); err != nil {
		return errors.Wrap(err, "session.default")
	}
	return nil
}

// Exercise returns the validated default session.
func (c *Config) Exercise() tracker.Exercise {
	return tracker.Exercise(c.Session.Default)
}
