package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dragboard/internal/model"

	"github.com/spf13/cobra"
)

// envelope is the JSON shape of every command's output.
type envelope struct {
	Data any `json:"data"`
}

// texter is implemented by payloads with a human-readable rendering for
// --format text.
type texter interface {
	Text() string
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return writeJSON(w, envelope{Data: v}, pretty)
	case "text":
		if t, ok := v.(texter); ok {
			_, err := fmt.Fprint(w, t.Text())
			return err
		}
		return writeJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// boardView is the board in display order.
type boardView []model.ListView

func (b boardView) Text() string {
	var sb strings.Builder
	for _, l := range b {
		mark := ""
		if l.Kind == model.ListKindExpandable && !l.Expanded {
			mark = " (collapsed)"
		}
		if l.Locked {
			mark += " [locked]"
		}
		fmt.Fprintf(&sb, "%s%s  %s\n", l.Title, mark, l.ID)
		for _, c := range l.Cards {
			lock := ""
			if c.Locked {
				lock = " [locked]"
			}
			fmt.Fprintf(&sb, "  - %s%s  %s\n", c.Title, lock, c.ID)
		}
	}
	return sb.String()
}

// moveResult reports a scripted reorder and the board after it.
type moveResult struct {
	Instruction string    `json:"instruction"`
	Board       boardView `json:"board"`
}

func (r moveResult) Text() string {
	return r.Instruction + "\n" + r.Board.Text()
}
