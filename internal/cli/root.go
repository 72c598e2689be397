package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dragboard/internal/logging"
	"dragboard/internal/store"
	"dragboard/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dragboard",
		Short:        "Terminal board of lists and cards, rearranged with the mouse",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  dragboard

  # Create a board with demo content
  dragboard init

  # Scripted reorders use the same drop rules as the mouse
  dragboard cards move card-1a2b --onto card-3c4d
  dragboard lists move list-9f8e --end
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive board.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DRAGBOARD_DIR", ""), "Board directory (default: nearest .dragboard, else ./.dragboard)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DRAGBOARD_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr(logging.LevelEnv, ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newLockCmd(app, true))
	cmd.AddCommand(newLockCmd(app, false))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	log, closeLog, err := tuiLogger(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	s, err := openStore(cmd.Context(), app, log)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	return tui.Run(cmd.Context(), tui.Options{Store: s, Config: cfg, Logger: log})
}

// tuiLogger logs to a file next to the config, since the board owns the
// terminal.
func tuiLogger(app *App) (*logrus.Entry, func(), error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return nil, nil, err
	}
	f, err := logging.OpenFile(dir)
	if err != nil {
		return nil, nil, err
	}
	l, err := logging.New(app.LogLevel, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logrus.NewEntry(l), func() { _ = f.Close() }, nil
}

func cliLogger(cmd *cobra.Command, app *App) (*logrus.Entry, error) {
	l, err := logging.New(app.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return logrus.NewEntry(l), nil
}

func boardDir(app *App) (string, error) {
	if d := strings.TrimSpace(app.Dir); d != "" {
		return d, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func openStore(ctx context.Context, app *App, log *logrus.Entry) (*store.Store, error) {
	dir, err := boardDir(app)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, dir, log)
}

// withStore opens the board for a scripted command and closes it after fn.
func withStore(cmd *cobra.Command, app *App, fn func(s *store.Store) error) error {
	log, err := cliLogger(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	s, err := openStore(cmd.Context(), app, log)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
