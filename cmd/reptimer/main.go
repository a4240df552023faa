package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/reptimer/pkg/alert"
	"github.com/go-go-golems/reptimer/pkg/config"
	"github.com/go-go-golems/reptimer/pkg/logging"
	"github.com/go-go-golems/reptimer/pkg/tracker"
	"github.com/go-go-golems/reptimer/pkg/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "reptimer",
	Short: "Count exercise sets and time the rest between them",
	Long: `A terminal rep counter for chest press, pull ups and squats.

Every counted set starts the rest countdown. When it runs out, reptimer
rings and shows a notification, then waits for the next set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd, cfg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logging.InitConsoleLogger(os.Stderr, logSettings(cmd, cfg))

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer func() {
			_ = enc.Close()
		}()
		return errors.Wrap(enc.Encode(cfg), "encode config")
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", fmt.Sprintf("Config file (default %s)", config.DefaultPath))
	f.Int("duration", 0, "Rest duration in seconds")
	f.String("session", "", "Exercise selected at startup (chestPress, pullUp, squat)")
	f.Bool("no-sound", false, "Do not play the alert tone")
	f.Bool("no-bell", false, "Do not ring the terminal bell")
	f.String("player", "", "Audio player used for the alert tone (default: first of paplay, aplay, afplay)")
	f.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	f.String("log-file", "", "Log file used while the TUI is running")
	f.Bool("with-caller", false, "Add caller information to log entries")

	rootCmd.AddCommand(configCmd)
}

// loadConfig layers command line flags over the config file and environment,
// then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.Changed("duration") {
		cfg.Timer.Duration, _ = f.GetInt("duration")
	}
	if f.Changed("session") {
		cfg.Session.Default, _ = f.GetString("session")
	}
	if noSound, _ := f.GetBool("no-sound"); noSound {
		cfg.Alert.Sound = false
	}
	if noBell, _ := f.GetBool("no-bell"); noBell {
		cfg.Alert.Bell = false
	}
	if f.Changed("player") {
		cfg.Alert.Player, _ = f.GetString("player")
	}
	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.Log.File, _ = f.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation")
	}
	return cfg, nil
}

func logSettings(cmd *cobra.Command, cfg *config.Config) logging.Settings {
	withCaller, _ := cmd.Flags().GetBool("with-caller")
	return logging.Settings{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		WithCaller: withCaller,
	}
}

func runTUI(cmd *cobra.Command, cfg *config.Config) error {
	// the terminal belongs to bubbletea, so logs go to a file
	closer, err := logging.InitFileLogger(logSettings(cmd, cfg))
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	alerter, cleanup := buildAlerter(cfg)
	defer cleanup()

	t := tracker.New(
		tracker.WithAlerter(alerter),
		tracker.WithDuration(cfg.Timer.Duration),
		tracker.WithSession(cfg.Exercise()),
	)
	log.Info().
		Int("duration", t.Duration()).
		Str("session", string(t.Active())).
		Msg("starting reptimer")

	ctx := cmd.Context()
	p := tea.NewProgram(ui.NewModel(ctx, t), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run TUI")
	}

	s := t.Snapshot()
	for _, e := range tracker.Exercises() {
		if s.Counts[e] > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", e.Info().Name, s.Counts[e])
		}
	}
	return nil
}

func buildAlerter(cfg *config.Config) (alert.Alerter, func()) {
	cleanup := func() {}
	var alerters alert.Multi

	if cfg.Alert.Bell {
		alerters = append(alerters, alert.NewBell(os.Stderr))
	}
	if cfg.Alert.Sound {
		var options []alert.ToneOption
		if cfg.Alert.Player != "" {
			options = append(options, alert.WithPlayer(cfg.Alert.Player))
		}
		tone, err := alert.NewTone(options...)
		if err != nil {
			log.Warn().Err(err).Msg("alert tone disabled")
		} else {
			log.Debug().Str("player", tone.Player()).Msg("alert tone enabled")
			alerters = append(alerters, tone)
			cleanup = func() {
				if err := tone.Close(); err != nil {
					log.Debug().Err(err).Msg("could not remove tone file")
				}
			}
		}
	}

	if len(alerters) == 0 {
		return alert.Nop{}, cleanup
	}
	return alerters, cleanup
}

func main() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}
