package cli

import (
	"fmt"
	"strings"

	"dragboard/internal/board"
	"dragboard/internal/model"
	"dragboard/internal/reorder"
	"dragboard/internal/store"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Add and reorder lists",
	}
	cmd.AddCommand(newListsAddCmd(app))
	cmd.AddCommand(newListsMoveCmd(app))
	cmd.AddCommand(newListsExpandCmd(app, true))
	cmd.AddCommand(newListsExpandCmd(app, false))
	return cmd
}

func parseListKind(s string) (model.ListKind, error) {
	switch k := model.ListKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", model.ListKindPlain:
		return model.ListKindPlain, nil
	case model.ListKindExpandable:
		return k, nil
	}
	return "", fmt.Errorf("unknown list kind: %q (want plain|expandable)", s)
}

func newListsAddCmd(app *App) *cobra.Command {
	var title, kind, onto string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a list at the end, or in front of --onto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseListKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withStore(cmd, app, func(s *store.Store) error {
				draft := board.NewListDraft(title, k)
				_, created, err := applyDrop(cmd.Context(), s, func(b *board.Board) (reorder.Instruction, error) {
					return dropList(b, draft, onto, onto == "")
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, created)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "List title")
	cmd.Flags().StringVar(&kind, "kind", string(model.ListKindPlain), "List kind (plain|expandable)")
	cmd.Flags().StringVar(&onto, "onto", "", "Insert in front of this list")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListsMoveCmd(app *App) *cobra.Command {
	var onto string
	var end bool
	cmd := &cobra.Command{
		Use:   "move <list-id>",
		Short: "Drop a list onto another list, or onto the end of the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				res, _, err := applyDrop(cmd.Context(), s, func(b *board.Board) (reorder.Instruction, error) {
					l, err := listHandle(b, args[0])
					if err != nil {
						return nil, err
					}
					return dropList(b, l, onto, end)
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, res)
			})
		},
	}
	cmd.Flags().StringVar(&onto, "onto", "", "Drop onto this list")
	cmd.Flags().BoolVar(&end, "end", false, "Drop onto the end of the board")
	return cmd
}

func newListsExpandCmd(app *App, expanded bool) *cobra.Command {
	use, short := "expand <list-id>", "Unfold an expandable list"
	if !expanded {
		use, short = "collapse <list-id>", "Fold an expandable list"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(s *store.Store) error {
				if err := s.SetExpanded(cmd.Context(), args[0], expanded); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"id": args[0], "expanded": expanded})
			})
		},
	}
}
