package cli

import (
	"dragboard/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail, fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the board database and rank invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				report, err := s.Doctor(cmd.Context())
				if err != nil {
					return err
				}
				if fix && len(report.Issues) > 0 {
					n, err := s.Reindex(cmd.Context())
					if err != nil {
						return err
					}
					if report, err = s.Doctor(cmd.Context()); err != nil {
						return err
					}
					report.Reindexed = n
				}
				if err := writeOut(cmd, app, report); err != nil {
					return err
				}
				if fail && report.HasErrors() {
					return store.ErrDoctorIssuesFound
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	cmd.Flags().BoolVar(&fix, "fix", false, "Rewrite ranks and re-attach orphaned cards, then check again")
	return cmd
}
