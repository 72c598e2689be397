package cli

import (
	"dragboard/internal/autoscroll"
	"dragboard/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect user configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config file and the effective autoscroll tuning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			axis := autoscroll.Vertical
			if cfg.Layout() == store.LayoutColumns {
				axis = autoscroll.Horizontal
			}
			ac, err := cfg.AutoscrollFor(axis)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"path":   path,
				"config": cfg,
				"layout": cfg.Layout(),
				"autoscroll": store.AutoscrollConfig{
					EdgeZone:        ac.EdgeZone,
					OverdragFloor:   ac.OverdragFloor,
					Step:            ac.Step,
					OverdragDivisor: ac.OverdragDivisor,
					DurationMs:      int(ac.Duration.Milliseconds()),
				},
			})
		},
	})
	return cmd
}
