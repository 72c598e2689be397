package cli

import (
	"errors"

	"dragboard/internal/board"
	"dragboard/internal/hierarchy"
	"dragboard/internal/model"
	"dragboard/internal/reorder"
	"dragboard/internal/store"

	"github.com/spf13/cobra"
)

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Add and reorder cards",
	}
	cmd.AddCommand(newCardsAddCmd(app))
	cmd.AddCommand(newCardsMoveCmd(app))
	return cmd
}

func newCardsAddCmd(app *App) *cobra.Command {
	var title, description, list, onto string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card at the end of --list, or in front of --onto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list == "" && onto == "" {
				return writeErr(cmd, errors.New("one of --list or --onto is required"))
			}
			return withStore(cmd, app, func(s *store.Store) error {
				draft := &hierarchy.Item{Payload: model.Card{Title: title, Description: description}}
				_, created, err := applyDrop(cmd.Context(), s, func(b *board.Board) (reorder.Instruction, error) {
					if onto != "" {
						return dropItem(b, draft, onto, "")
					}
					return dropItem(b, draft, "", list)
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, created)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&description, "description", "", "Card description")
	cmd.Flags().StringVar(&list, "list", "", "Append to this list")
	cmd.Flags().StringVar(&onto, "onto", "", "Insert in front of this card")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCardsMoveCmd(app *App) *cobra.Command {
	var onto, endOf string
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Drop a card onto another card, or onto the end of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				res, _, err := applyDrop(cmd.Context(), s, func(b *board.Board) (reorder.Instruction, error) {
					it, err := cardHandle(b, args[0])
					if err != nil {
						return nil, err
					}
					return dropItem(b, it, onto, endOf)
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, res)
			})
		},
	}
	cmd.Flags().StringVar(&onto, "onto", "", "Drop onto this card")
	cmd.Flags().StringVar(&endOf, "end-of", "", "Drop onto the end of this list")
	return cmd
}

func newLockCmd(app *App, locked bool) *cobra.Command {
	use, short := "lock <id>", "Pin a list or card so it cannot be dragged"
	if !locked {
		use, short = "unlock <id>", "Allow a list or card to be dragged again"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				if err := s.SetLocked(cmd.Context(), args[0], locked); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"id": args[0], "locked": locked})
			})
		},
	}
}
