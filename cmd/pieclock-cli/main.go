package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pieclock/internal/alarm"
	"pieclock/internal/config"
	"pieclock/internal/core/collection"
	"pieclock/internal/core/countdown"
	"pieclock/internal/platform"
	"pieclock/internal/storage"
	"pieclock/internal/tui"
)

const appName = "pieclock"

var (
	configDir string
	storeName string
)

// errNoTimer is returned when a reference matches no timer.
var errNoTimer = errors.New("no such timer")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pieclock-cli",
		Short:        "Manage pie-clock countdown timers from the terminal",
		Long:         `A headless companion to the pieclock desktop app. Every command loads the saved timers, applies one operation and saves them back.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding settings and timers (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "", "timer store backend: file, sqlite or memory (default: from settings)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newTransitionCmd("pause", "Pause a running timer", (*countdown.Engine).Pause))
	rootCmd.AddCommand(newTransitionCmd("resume", "Resume a paused timer", (*countdown.Engine).Resume))
	rootCmd.AddCommand(newTransitionCmd("cancel", "Cancel a running or paused timer", (*countdown.Engine).Cancel))
	rootCmd.AddCommand(newTransitionCmd("dismiss", "Dismiss an alarming timer", (*countdown.Engine).Dismiss))
	rootCmd.AddCommand(newTransitionCmd("restart", "Run a timer again from its initial duration", (*countdown.Engine).Restart))
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newLoopCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newFaceCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// session is one load-modify-save cycle against the configured store.
type session struct {
	dir      string
	settings config.Settings
	timers   *collection.Collection
	closer   io.Closer
}

func openSession(ringer countdown.Alarm) (*session, error) {
	dir := configDir
	if dir == "" {
		resolved, err := platform.ConfigDir(appName)
		if err != nil {
			return nil, err
		}
		dir = resolved
	}

	settings, err := storage.LoadSettings(dir)
	platform.LogError("load settings", err)

	backend := settings.Store
	if storeName != "" {
		backend = storeName
	}
	store, closer, err := storage.Open(backend, dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	timers := collection.New(collection.Config{
		Engine: countdown.Options{
			Alarm:    ringer,
			Selector: settings.Selector(),
		},
		Defaults: settings.TimerDefaults(),
		Store:    store,
		Codec:    storage.YAMLCodec{},
	})
	if err := timers.Load(); err != nil {
		if errors.Is(err, collection.ErrUnreadable) {
			platform.LogError("close store", closer.Close())
			timers.Close()
			return nil, fmt.Errorf("load timers: %w", err)
		}
		platform.LogError("load timers", err)
	}

	return &session{dir: dir, settings: settings, timers: timers, closer: closer}, nil
}

func (s *session) save() error {
	if err := s.timers.Save(); err != nil {
		return fmt.Errorf("save timers: %w", err)
	}
	return nil
}

func (s *session) close() {
	platform.LogError("close store", s.closer.Close())
}

// withTimer opens a session, resolves ref, applies fn and saves.
func withTimer(ref string, fn func(s *session, engine *countdown.Engine) error) error {
	s, err := openSession(nil)
	if err != nil {
		return err
	}
	defer s.close()

	engine, err := findTimer(s.timers, ref)
	if err != nil {
		return err
	}
	if err := fn(s, engine); err != nil {
		return err
	}
	return s.save()
}

// findTimer resolves a 1-based position, an id, an id prefix or a label.
func findTimer(timers *collection.Collection, ref string) (*countdown.Engine, error) {
	if position, err := strconv.Atoi(ref); err == nil {
		if engine, ok := timers.At(position - 1); ok {
			return engine, nil
		}
	}
	if engine, ok := timers.Get(ref); ok {
		return engine, nil
	}

	var match *countdown.Engine
	for _, engine := range timers.Timers() {
		if strings.HasPrefix(engine.ID(), ref) || engine.Settings().Label == ref {
			if match != nil {
				return nil, fmt.Errorf("timer reference %q is ambiguous", ref)
			}
			match = engine
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", errNoTimer, ref)
	}
	return match, nil
}

func printTimer(out io.Writer, engine *countdown.Engine) {
	fmt.Fprint(out, tui.RenderPlain([]countdown.View{engine.View()}))
}

func newListCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(nil)
			if err != nil {
				return err
			}
			defer s.close()

			if plain {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlain(s.timers.Views()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable(s.timers.Views()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "one tab-separated line per timer")
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		label string
		sound string
		loop  bool
		start bool
	)

	cmd := &cobra.Command{
		Use:   "add [duration]",
		Short: "Add a new timer",
		Long:  `Add a new timer, optionally configured with a duration such as 5m, 90s or 1:30.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var duration time.Duration
			if len(args) == 1 {
				parsed, err := countdown.ParseDuration(args[0])
				if err != nil {
					return err
				}
				duration = parsed
			}

			s, err := openSession(nil)
			if err != nil {
				return err
			}
			defer s.close()

			engine := s.timers.Add()
			settings := engine.Settings()
			settings.Label = label
			if sound != "" {
				settings.Sound = sound
			}
			engine.UpdateSettings(settings)
			engine.SetConfigured(duration)
			engine.SetLooping(loop)
			if start {
				engine.Start()
			}

			if err := s.save(); err != nil {
				return err
			}
			printTimer(cmd.OutOrStdout(), engine)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "timer label")
	cmd.Flags().StringVar(&sound, "sound", "", "alarm sound name (see the desktop preferences)")
	cmd.Flags().BoolVar(&loop, "loop", false, "restart automatically on expiry")
	cmd.Flags().BoolVar(&start, "start", false, "start immediately")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <timer>",
		Short: "Remove a timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				s.timers.Remove(engine.ID())
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", engine.ID())
				return nil
			})
		},
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <timer> [duration]",
		Short: "Start an idle timer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				if len(args) == 2 {
					duration, err := countdown.ParseDuration(args[1])
					if err != nil {
						return err
					}
					engine.SetConfigured(duration)
				}
				engine.Start()
				if engine.State() != countdown.StateRunning {
					return fmt.Errorf("timer %s was not started: state %s, configured %s",
						engine.ID(), engine.State(), countdown.FormatDuration(engine.View().Configured))
				}
				printTimer(cmd.OutOrStdout(), engine)
				return nil
			})
		},
	}
}

func newTransitionCmd(name, short string, transition func(*countdown.Engine)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <timer>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				transition(engine)
				printTimer(cmd.OutOrStdout(), engine)
				return nil
			})
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <timer> <duration>",
		Short: "Set the remaining time, as when dragging the dial",
		Long:  `Set the remaining time of a timer. Idle timers start with the new value; setting an active timer to zero cancels it.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := countdown.ParseDuration(args[1])
			if err != nil {
				return err
			}
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				engine.SetRemainingDirectly(duration)
				printTimer(cmd.OutOrStdout(), engine)
				return nil
			})
		},
	}
}

func newLoopCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "loop <timer> <on|off>",
		Short:     "Toggle automatic restart on expiry",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var looping bool
			switch args[1] {
			case "on":
				looping = true
			case "off":
				looping = false
			default:
				return fmt.Errorf("invalid loop value: %s (must be 'on' or 'off')", args[1])
			}
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				engine.SetLooping(looping)
				printTimer(cmd.OutOrStdout(), engine)
				return nil
			})
		},
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <timer> <position>",
		Short: "Move a timer to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position: %s", args[1])
			}
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				s.timers.Reorder(engine.ID(), position-1)
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlain(s.timers.Views()))
				return nil
			})
		},
	}
}

func newFaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "face <timer> [name|auto]",
		Short: "Cycle, pick or reset the watchface of a timer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimer(args[0], func(s *session, engine *countdown.Engine) error {
				switch {
				case len(args) == 1:
					engine.CycleScale()
				case args[1] == "auto":
					settings := engine.Settings()
					settings.AutoScale = true
					engine.UpdateSettings(settings)
				default:
					if _, ok := s.settings.Selector().Lookup(args[1]); !ok {
						return fmt.Errorf("unknown watchface: %s", args[1])
					}
					settings := engine.Settings()
					settings.AutoScale = false
					settings.ManualScale = args[1]
					engine.UpdateSettings(settings)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s face %s\n", engine.ID(), engine.EffectiveScale().Name)
				return nil
			})
		},
	}
}

func newWatchCmd() *cobra.Command {
	var (
		plain    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the timers live with an interactive dashboard",
		Long:  `Tick every timer, ring alarms and save periodically until interrupted. Falls back to plain line output when stdout is not a terminal.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(alarm.NewRinger(alarm.NewCommandPlayer(), nil))
			if err != nil {
				return err
			}
			defer s.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			driverDone := make(chan error, 1)
			go func() {
				driverDone <- s.timers.Run(ctx, s.settings.RunOptions())
			}()

			if plain || !isTerminal(cmd.OutOrStdout()) {
				err = watchPlain(ctx, cmd.OutOrStdout(), s.timers, interval)
			} else {
				model := tui.New(s.timers, tui.Options{Direction: s.settings.SweepDirection})
				_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					err = nil
				}
			}

			stop()
			platform.LogError("run timers", <-driverDone)
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print plain lines instead of the dashboard")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "plain output interval")
	return cmd
}

func watchPlain(ctx context.Context, out io.Writer, timers *collection.Collection, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := timers.Subscribe(16)
	for {
		fmt.Fprint(out, tui.RenderPlain(timers.Views()))
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case event := <-events:
			if event.Type == collection.EventExpired {
				fmt.Fprintf(out, "expired\t%s\n", event.TimerID)
			}
		}
	}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
