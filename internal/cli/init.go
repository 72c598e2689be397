package cli

import (
	"dragboard/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the board directory and database",
		Long:  "Create the board directory and database. An empty board gets demo lists and cards unless --empty is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				seeded := false
				if !empty {
					before, err := s.Lists(cmd.Context())
					if err != nil {
						return err
					}
					if err := s.Seed(cmd.Context()); err != nil {
						return err
					}
					seeded = len(before) == 0
				}
				return writeOut(cmd, app, map[string]any{
					"dir":        s.Dir,
					"sqlitePath": s.Path(),
					"seeded":     seeded,
				})
			})
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Do not add demo content")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the board in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				b, err := s.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return writeOut(cmd, app, boardView(b.Views()))
			})
		},
	}
}
