package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sethgrid/bolita/internal/art"
	"github.com/sethgrid/bolita/internal/command"
	"github.com/sethgrid/bolita/internal/discovery"
	"github.com/sethgrid/bolita/internal/health"
	"github.com/sethgrid/bolita/internal/logging"
	"github.com/sethgrid/bolita/internal/pet"
	"github.com/sethgrid/bolita/internal/session"
	"github.com/sethgrid/bolita/internal/storage"
	"github.com/spf13/cobra"
)

const Version = "v0.1.0"

const clearScreen = "\033[H\033[2J"

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "bolita",
		Short:         "Bolita - a small virtual pet for your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If version flag is set, print version and exit
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to pet config file (.toml or .yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from BOLITA_LOG_LEVEL, else warn)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (default from BOLITA_LOG_FORMAT, else text)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newSimulateCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

// newLogger defaults to warn so action messages, which the pet already
// prints, are not logged twice.
func newLogger(flags *globalFlags, w io.Writer) *slog.Logger {
	opts := logging.FromEnv(flags.logLevel, flags.logFormat, slog.LevelWarn)
	opts.Writer = w
	return logging.New(opts)
}

// loadConfig finds the config the same way for every command: --config,
// then the nearest .bolita directory, then ~/.bolita. With none of those
// the built-in defaults are used.
func loadConfig(flags *globalFlags, logger *slog.Logger) (pet.PetConfig, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return pet.PetConfig{}, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := discovery.Resolve(flags.configPath, cwd)
	if err != nil {
		return pet.PetConfig{}, "", err
	}
	if path == "" {
		logger.Debug("no config found, using defaults")
		return pet.DefaultConfig(pet.DefaultName), "", nil
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return pet.PetConfig{}, "", fmt.Errorf("failed to load config %s: %w", path, err)
	}
	logger.Debug("loaded config", "path", path, "pet", cfg.Name)
	return cfg, path, nil
}

func newInitCmd() *cobra.Command {
	var (
		global bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Write a pet config with the default rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := storage.ParseFormat(format)
			if err != nil {
				return err
			}

			var baseDir string
			if global {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
				baseDir = home
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				baseDir = cwd
			}

			name := pet.DefaultName
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				name = strings.TrimSpace(args[0])
			}

			path, err := storage.InitPet(name, baseDir, f)
			if err != nil {
				if errors.Is(err, storage.ErrPetExists) {
					return fmt.Errorf("%w. Edit it or remove %s first", err, filepath.Join(baseDir, storage.DirName))
				}
				return fmt.Errorf("failed to create pet: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pet '%s' created at %s\n", name, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the config in your home directory")
	cmd.Flags().StringVar(&format, "format", "toml", "Config format: toml or yaml")
	return cmd
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		fps      int
		barWidth int
		noClear  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Look after your pet interactively",
		Long: `Start a live session. Type a command and press enter:

` + command.Help(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The input reader and the frame loop both print.
			out := &lockedWriter{w: cmd.OutOrStdout()}
			logger := newLogger(flags, cmd.ErrOrStderr())

			cfg, _, err := loadConfig(flags, logger)
			if err != nil {
				return err
			}
			if fps > 0 {
				cfg.FPS = fps
			}

			p := pet.NewFromConfig(cfg, pet.Multi(pet.WriterNotifier(out), pet.LogNotifier(logger)))

			renderer := session.RendererFunc(func(snap pet.Snapshot) {
				if !noClear {
					fmt.Fprint(out, clearScreen)
				}
				fmt.Fprint(out, art.Panel(snap, panelOptions(snap, cfg, barWidth, true, true)))
			})

			s := session.New(p, session.Options{
				FPS:      cfg.FPS,
				Renderer: renderer,
				Logger:   logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			go readCommands(ctx, cmd.InOrStdin(), out, s)

			s.Run(ctx)
			fmt.Fprintf(out, "Bye from %s!\n", p.Name())
			return nil
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (default from config)")
	cmd.Flags().IntVar(&barWidth, "bar-width", art.DefaultBarWidth, "Width of the stat bars in cells")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Do not clear the screen between frames")
	return cmd
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// readCommands turns input lines into queued commands. It waits for room
// in the queue rather than dropping lines, and stops the session on quit
// or end of input.
func readCommands(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) {
	defer s.Quit()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		c, err := command.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "%v (type 'help' for commands)\n", err)
			continue
		}
		if c.Corrected() {
			fmt.Fprintf(out, "%q read as %s\n", c.Input, c.Verb)
		}
		switch c.Verb {
		case command.VerbHelp:
			fmt.Fprint(out, command.Help())
			continue
		case command.VerbQuit:
			return
		}
		if err := s.Send(ctx, c.Verb); err != nil {
			return
		}
	}
}

func newSimulateCmd(flags *globalFlags) *cobra.Command {
	var (
		seconds  float64
		fps      int
		actions  []string
		verbose  bool
		barWidth int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the pet for a fixed amount of simulated time and print the result",
		Example: `  bolita simulate --seconds 10
  bolita simulate --seconds 30 --do feed@10 --do play@12.5 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if math.IsNaN(seconds) || seconds < 0 || seconds > session.MaxSimulateSeconds {
				return fmt.Errorf("seconds must be between 0 and %v, got %v", session.MaxSimulateSeconds, seconds)
			}
			out := cmd.OutOrStdout()
			logger := newLogger(flags, cmd.ErrOrStderr())

			cfg, _, err := loadConfig(flags, logger)
			if err != nil {
				return err
			}
			if fps > 0 {
				cfg.FPS = fps
			}

			schedule, err := parseSchedule(actions, seconds)
			if err != nil {
				return err
			}

			p := pet.NewFromConfig(cfg, pet.Multi(pet.WriterNotifier(out), pet.LogNotifier(logger)))
			s := session.New(p, session.Options{FPS: cfg.FPS, Logger: logger})

			snap := s.Simulate(seconds, schedule)

			fmt.Fprintln(out)
			fmt.Fprint(out, art.Panel(snap, panelOptions(snap, cfg, barWidth, verbose, false)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 10, "Simulated seconds to run")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (default from config)")
	cmd.Flags().StringArrayVar(&actions, "do", nil, "Action to take, as verb[@seconds] (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show the health score")
	cmd.Flags().IntVar(&barWidth, "bar-width", art.DefaultBarWidth, "Width of the stat bars in cells")
	return cmd
}

// parseSchedule reads "feed@2.5" style specs. A spec without a time fires
// at the start.
func parseSchedule(specs []string, seconds float64) ([]session.Scheduled, error) {
	var schedule []session.Scheduled
	for _, spec := range specs {
		verbPart, atPart, hasAt := strings.Cut(spec, "@")

		c, err := command.Parse(verbPart)
		if err != nil {
			return nil, fmt.Errorf("invalid action %q: %w", spec, err)
		}
		if _, ok := c.Action(); !ok && c.Verb != command.VerbQuit {
			return nil, fmt.Errorf("invalid action %q: %s cannot be scheduled", spec, c.Verb)
		}

		at := 0.0
		if hasAt {
			at, err = strconv.ParseFloat(strings.TrimSpace(atPart), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid time in %q: %w", spec, err)
			}
		}
		if at < 0 || at > seconds {
			return nil, fmt.Errorf("invalid time in %q: must be between 0 and %v", spec, seconds)
		}

		schedule = append(schedule, session.Scheduled{At: at, Verb: c.Verb})
	}
	return schedule, nil
}

func panelOptions(snap pet.Snapshot, cfg pet.PetConfig, barWidth int, showHealth, showLegend bool) art.PanelOptions {
	return art.PanelOptions{
		BarWidth:   barWidth,
		ShowHealth: showHealth,
		Health:     health.ComputeHealth(snap.Hunger, snap.Energy, snap.Happiness, snap.Dirtiness, cfg.HealthComputation),
		ShowLegend: showLegend,
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the pet config",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := storage.ParseFormat(format)
			if err != nil {
				return err
			}
			logger := newLogger(flags, cmd.ErrOrStderr())

			cfg, path, err := loadConfig(flags, logger)
			if err != nil {
				return err
			}

			data, err := storage.Marshal(cfg, f)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			out := cmd.OutOrStdout()
			if path == "" {
				fmt.Fprintln(out, "# built-in defaults (no config file found)")
			} else {
				fmt.Fprintf(out, "# %s\n", path)
			}
			_, err = out.Write(data)
			return err
		},
	}
	showCmd.Flags().StringVar(&format, "format", "toml", "Output format: toml or yaml")

	configCmd.AddCommand(showCmd)
	return configCmd
}
