package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"dragboard/internal/model"
	"dragboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	return env.Data
}

// newBoard initialises a seeded board and returns a runner bound to it.
func newBoard(t *testing.T) (run func(args ...string) string, dir string) {
	t.Helper()
	t.Setenv("DRAGBOARD_CONFIG_DIR", t.TempDir())
	t.Setenv("DRAGBOARD_FORMAT", "")
	dir = filepath.Join(t.TempDir(), ".dragboard")
	run = func(args ...string) string {
		t.Helper()
		out, stderr, err := runCLI(t, append([]string{"--dir", dir}, args...)...)
		require.NoError(t, err, "dragboard %v\nstderr:\n%s", args, stderr)
		return out
	}
	first := decode[map[string]any](t, run("init"))
	require.Equal(t, true, first["seeded"])
	return run, dir
}

func show(t *testing.T, run func(args ...string) string) boardView {
	t.Helper()
	return decode[boardView](t, run("show"))
}

func cardTitles(l model.ListView) []string {
	out := []string{}
	for _, c := range l.Cards {
		out = append(out, c.Title)
	}
	return out
}

func TestInit_SeedsOnce(t *testing.T) {
	run, dir := newBoard(t)
	b := show(t, run)
	require.Len(t, b, 3)
	assert.Equal(t, "Backlog", b[0].Title)
	assert.Equal(t, []string{"Sketch layout", "Pick palette", "Write release notes"}, cardTitles(b[0]))

	again := decode[map[string]any](t, run("init"))
	assert.Equal(t, false, again["seeded"])
	assert.Equal(t, dir, again["dir"])
	assert.Len(t, show(t, run), 3)
}

func TestInit_Empty(t *testing.T) {
	t.Setenv("DRAGBOARD_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	out, _, err := runCLI(t, "--dir", dir, "init", "--empty")
	require.NoError(t, err)
	assert.Equal(t, false, decode[map[string]any](t, out)["seeded"])

	out, _, err = runCLI(t, "--dir", dir, "show")
	require.NoError(t, err)
	assert.Empty(t, decode[boardView](t, out))
}

func TestCardsMove_OntoCardInOtherList(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	res := decode[moveResult](t, run("cards", "move", b[0].Cards[0].ID, "--onto", b[1].Cards[0].ID))
	assert.Equal(t, []string{"Pick palette", "Write release notes"}, cardTitles(res.Board[0]))
	assert.Equal(t, []string{"Sketch layout", "Drag cards between lists"}, cardTitles(res.Board[1]))
	assert.Equal(t, res.Board, show(t, run))
}

func TestCardsMove_SameListDownward(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	// Dropping the first card on the third lands it in the third slot.
	res := decode[moveResult](t, run("cards", "move", b[0].Cards[0].ID, "--onto", b[0].Cards[2].ID))
	assert.Equal(t, []string{"Pick palette", "Sketch layout", "Write release notes"}, cardTitles(res.Board[0]))
}

func TestCardsMove_EndOfList(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	res := decode[moveResult](t, run("cards", "move", b[0].Cards[0].ID, "--end-of", b[0].ID))
	assert.Equal(t, []string{"Pick palette", "Write release notes", "Sketch layout"}, cardTitles(res.Board[0]))

	res = decode[moveResult](t, run("cards", "move", b[2].Cards[1].ID, "--end-of", b[1].ID))
	assert.Equal(t, []string{"Drag cards between lists", "Repo setup"}, cardTitles(res.Board[1]))
}

func TestListsMove(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	res := decode[moveResult](t, run("lists", "move", b[0].ID, "--end"))
	assert.Equal(t, []string{"Doing", "Archive", "Backlog"}, titlesOf(res.Board))

	res = decode[moveResult](t, run("lists", "move", b[0].ID, "--onto", b[1].ID))
	assert.Equal(t, []string{"Backlog", "Doing", "Archive"}, titlesOf(res.Board))
}

func titlesOf(b boardView) []string {
	out := []string{}
	for _, l := range b {
		out = append(out, l.Title)
	}
	return out
}

func TestCardsAdd(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	c := decode[model.Card](t, run("cards", "add", "--list", b[1].ID, "--title", "Ship it", "--description", "tag and push"))
	assert.Equal(t, b[1].ID, c.ListID)
	assert.Equal(t, "tag and push", c.Description)
	assert.NotEmpty(t, c.ID)

	run("cards", "add", "--onto", b[1].Cards[0].ID, "--title", "Plan")
	assert.Equal(t, []string{"Plan", "Drag cards between lists", "Ship it"}, cardTitles(show(t, run)[1]))
}

func TestListsAdd(t *testing.T) {
	run, _ := newBoard(t)
	b := show(t, run)

	l := decode[model.List](t, run("lists", "add", "--title", "Ideas", "--kind", "expandable", "--onto", b[0].ID))
	assert.Equal(t, model.ListKindExpandable, l.Kind)
	assert.True(t, l.Expanded)

	run("lists", "add", "--title", "Later")
	assert.Equal(t, []string{"Ideas", "Backlog", "Doing", "Archive", "Later"}, titlesOf(show(t, run)))
}

func TestLockBlocksMove(t *testing.T) {
	run, dir := newBoard(t)
	b := show(t, run)
	id := b[0].Cards[0].ID

	run("lock", id)
	_, _, err := runCLI(t, "--dir", dir, "cards", "move", id, "--end-of", b[1].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrLocked)

	run("unlock", id)
	run("cards", "move", id, "--end-of", b[1].ID)
}

func TestExpandCollapse(t *testing.T) {
	run, _ := newBoard(t)
	archive := show(t, run)[2]
	require.Equal(t, model.ListKindExpandable, archive.Kind)

	run("lists", "collapse", archive.ID)
	assert.False(t, show(t, run)[2].Expanded)
	run("lists", "expand", archive.ID)
	assert.True(t, show(t, run)[2].Expanded)
}

func TestMove_Errors(t *testing.T) {
	run, dir := newBoard(t)
	b := show(t, run)
	card := b[0].Cards[0].ID

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no destination", []string{"cards", "move", card}, "destination is required"},
		{"both destinations", []string{"cards", "move", card, "--onto", card, "--end-of", b[0].ID}, "mutually exclusive"},
		{"unknown card", []string{"cards", "move", "card-nope", "--end-of", b[0].ID}, "card not found: card-nope"},
		{"unknown list", []string{"lists", "move", "list-nope", "--end"}, "list not found: list-nope"},
		{"add without list", []string{"cards", "add", "--title", "x"}, "--list or --onto"},
		{"bad kind", []string{"lists", "add", "--title", "x", "--kind", "grid"}, "unknown list kind"},
		{"empty title", []string{"cards", "add", "--list", b[0].ID, "--title", "  "}, "title"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, append([]string{"--dir", dir}, tc.args...)...)
			require.Error(t, err)
			assert.Contains(t, stderr, tc.want)
		})
	}

	_, _, err := runCLI(t, "--dir", dir, "cards", "move", "card-nope", "--end-of", b[0].ID)
	var nf store.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "card", nf.Kind)
}

func TestShow_TextFormat(t *testing.T) {
	run, _ := newBoard(t)
	out := run("--format", "text", "show")
	assert.Contains(t, out, "Backlog  list-")
	assert.Contains(t, out, "  - Sketch layout  card-")
	assert.NotContains(t, out, `"data"`)
}

func TestShow_UnknownFormat(t *testing.T) {
	_, dir := newBoard(t)
	_, _, err := runCLI(t, "--dir", dir, "--format", "yaml", "show")
	assert.EqualError(t, err, "unknown format: yaml")
}

func TestConfigShow(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DRAGBOARD_CONFIG_DIR", cfgDir)
	require.NoError(t, store.SaveConfig(&store.Config{TUI: &store.TUIConfig{Layout: store.LayoutColumns}}))

	out, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)
	got := decode[struct {
		Path       string                 `json:"path"`
		Layout     string                 `json:"layout"`
		Autoscroll store.AutoscrollConfig `json:"autoscroll"`
	}](t, out)
	assert.Equal(t, filepath.Join(cfgDir, "config.json"), got.Path)
	assert.Equal(t, store.LayoutColumns, got.Layout)
	assert.Equal(t, 2.0, got.Autoscroll.EdgeZone)
	assert.Equal(t, 30, got.Autoscroll.DurationMs)
}

func TestDoctor(t *testing.T) {
	run, dir := newBoard(t)
	rep := decode[store.DoctorReport](t, run("doctor", "--fail"))
	assert.Empty(t, rep.Issues)

	rep = decode[store.DoctorReport](t, run("doctor", "--fix"))
	assert.Zero(t, rep.Reindexed)

	_, _, err := runCLI(t, "--dir", dir, "doctor", "--bogus")
	assert.Error(t, err)
}
