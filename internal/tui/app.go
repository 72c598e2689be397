package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"dragboard/internal/autoscroll"
	"dragboard/internal/board"
	"dragboard/internal/dragsession"
	"dragboard/internal/hierarchy"
	"dragboard/internal/logging"
	"dragboard/internal/reorder"
	"dragboard/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"
)

const (
	headerRows  = 2
	reloadEvery = 750 * time.Millisecond
)

type reloadTickMsg struct{}

type Options struct {
	Store  *store.Store
	Config *store.Config
	Logger *logrus.Entry
}

type pressInfo struct {
	x, y int
	at   target
}

type appModel struct {
	ctx   context.Context
	store *store.Store
	cfg   *store.Config
	log   *logrus.Entry
	now   func() time.Time
	// saveConfig persists layout changes; nil disables persistence.
	saveConfig func(*store.Config) error

	board *board.Board
	coord *dragsession.Coordinator

	layout        string
	width, height int

	vp           viewport.Model
	scrollPos    float64
	anim         *autoscroll.Animation
	framePending bool

	keys keyMap
	help help.Model

	zones   *zone.Manager
	zoneHit func(id string, msg tea.MouseMsg) bool

	press    *pressInfo
	drag     dragsession.Drag
	dragging bool
	hover    target

	status    string
	statusErr bool

	lastModTime time.Time
}

func newAppModel(ctx context.Context, opts Options) (*appModel, error) {
	if opts.Store == nil {
		return nil, errors.New("tui: missing store")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &store.Config{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := &appModel{
		ctx:        ctx,
		store:      opts.Store,
		cfg:        cfg,
		log:        log.WithField("component", "tui"),
		now:        time.Now,
		saveConfig: store.SaveConfig,
		layout:     cfg.Layout(),
		vp:         viewport.New(0, 0),
		keys:       newKeyMap(),
		help:       help.New(),
	}
	if err := m.loadBoard(); err != nil {
		return nil, err
	}
	if err := m.rebuildCoordinator(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *appModel) scrollAxis() autoscroll.Axis {
	if m.layout == store.LayoutColumns {
		return autoscroll.Horizontal
	}
	return autoscroll.Vertical
}

// rebuildCoordinator wires a fresh drag coordinator for the current layout.
func (m *appModel) rebuildCoordinator() error {
	ac, err := m.cfg.AutoscrollFor(m.scrollAxis())
	if err != nil {
		return err
	}
	m.coord = dragsession.New(dragsession.Options{
		Hierarchy:  func() *hierarchy.Hierarchy { return m.board.Tree },
		Viewport:   boardViewport{m: m},
		Autoscroll: ac,
		OnMove:     func(mv reorder.Move) { m.applyInstruction(mv) },
		OnInsert:   func(in reorder.Insert) { m.applyInstruction(in) },
		OnDragChanged: func(d dragsession.Drag, dragging bool) {
			m.dragging = dragging
			m.drag = d
			if !dragging {
				m.drag = dragsession.Drag{}
			}
		},
		Logger: m.log,
		Now:    func() time.Time { return m.now() },
	})
	return nil
}

func (m *appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(reloadEvery, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.setScroll(m.scrollPos)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.frameCmd()

	case frameMsg:
		m.framePending = false
		m.stepAnimation()
		return m, m.frameCmd()

	case reloadTickMsg:
		if !m.dragging && m.storeChanged() {
			m.reload()
		}
		return m, tickReload()
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		if !m.statusErr {
			m.setStatus("reloaded")
		}
	case key.Matches(msg, m.keys.Layout):
		m.toggleLayout()
	case key.Matches(msg, m.keys.Cancel):
		if m.coord.Session() != nil {
			m.coord.PointerUp()
			m.press = nil
			m.hover = target{}
			m.setStatus("drag cancelled")
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *appModel) toggleLayout() {
	if m.coord.Session() != nil {
		m.coord.PointerUp()
	}
	if m.layout == store.LayoutColumns {
		m.layout = store.LayoutStacked
	} else {
		m.layout = store.LayoutColumns
	}
	m.anim = nil
	m.scrollPos = 0
	if err := m.rebuildCoordinator(); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("layout: " + m.layout)

	if m.saveConfig == nil {
		return
	}
	if m.cfg.TUI == nil {
		m.cfg.TUI = &store.TUIConfig{}
	}
	m.cfg.TUI.Layout = m.layout
	if err := m.saveConfig(m.cfg); err != nil {
		m.log.WithError(err).Warn("saving layout preference failed")
	}
}

func (m *appModel) loadBoard() error {
	snap, err := m.store.Snapshot(m.ctx)
	if err != nil {
		return err
	}
	m.board = board.Build(snap)
	m.lastModTime = m.storeModTime()
	return nil
}

func (m *appModel) reload() {
	if err := m.loadBoard(); err != nil {
		m.setError(err)
		return
	}
	m.setScroll(m.scrollPos)
}

func (m *appModel) storeModTime() time.Time {
	var latest time.Time
	for _, p := range []string{m.store.Path(), m.store.Path() + "-wal"} {
		if st, err := os.Stat(p); err == nil && st.ModTime().After(latest) {
			latest = st.ModTime()
		}
	}
	return latest
}

func (m *appModel) storeChanged() bool {
	return m.storeModTime().After(m.lastModTime)
}

// applyInstruction persists a resolved drop and reloads the board.
func (m *appModel) applyInstruction(in reorder.Instruction) {
	desc := m.describe(in)
	if err := m.store.Apply(m.ctx, m.board.Snapshot, in); err != nil {
		m.log.WithError(err).WithField("instruction", in).Warn("apply failed")
		m.setError(err)
		return
	}
	m.log.WithField("instruction", in).Info(desc)
	m.setStatus(desc)
	m.reload()
}

func (m *appModel) describe(in reorder.Instruction) string {
	lists := m.board.Tree.Lists
	switch in := in.(type) {
	case reorder.ItemMove:
		if in.NoOp() {
			return "card unchanged"
		}
		it := lists[in.SourceList].Items[in.SourceItem]
		return fmt.Sprintf("moved %q to %s", cardTitle(it), listTitle(lists[in.DestList]))
	case reorder.ItemInsert:
		return fmt.Sprintf("added %q to %s", cardTitle(in.Item), listTitle(lists[in.DestList]))
	case reorder.ListMove:
		if in.NoOp() {
			return "list unchanged"
		}
		return fmt.Sprintf("moved list %s", listTitle(lists[in.Source]))
	case reorder.ListInsert:
		return fmt.Sprintf("added list %s", listTitle(in.List))
	}
	return fmt.Sprint(in)
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *appModel) boardTop() int { return headerRows }

func (m *appModel) boardHeight() int {
	return max(1, m.height-headerRows-lipgloss.Height(m.renderFooter()))
}

func (m *appModel) renderState() renderState {
	return renderState{
		draggedItem: m.drag.Item,
		draggedList: m.drag.List,
		dragging:    m.dragging,
		hover:       m.hover,
	}
}

func (m *appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	out := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPalette(),
		m.mark(zoneBoard, m.renderBoard()),
		m.renderFooter(),
	)
	return m.scan(out)
}

func (m *appModel) renderHeader() string {
	title := styleTitle().Render("dragboard")
	meta := styleMuted().Render(fmt.Sprintf("  %d lists · %d cards · %s", m.board.Tree.Len(), m.board.Tree.ItemCount(), m.layout))
	return fit(title+meta, m.width)
}

func (m *appModel) renderPalette() string {
	chips := []string{
		m.mark(zoneChipCard, styleChip().Render("+ card")),
		m.mark(zoneChipList, styleChip().Render("+ list")),
	}
	hint := styleMuted().Render("  drag a chip onto the board")
	if m.dragging {
		hint = styleMuted().Render("  release over a target · esc cancels")
	}
	return strings.Join(chips, " ") + hint
}

func (m *appModel) renderBoard() string {
	h := m.boardHeight()
	st := m.renderState()
	if m.layout == store.LayoutColumns {
		lines, _, _ := renderColumns(m.board.Tree, st, h)
		return strings.Join(cutColumns(lines, m.scrollOffset(), m.width), "\n")
	}
	lines, _ := renderStacked(m.board.Tree, st, m.width)
	m.vp.Width = m.width
	m.vp.Height = h
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.SetYOffset(m.scrollOffset())
	return m.vp.View()
}

func (m *appModel) renderFooter() string {
	status := styleMuted().Render(m.status)
	if m.statusErr {
		status = styleError().Render(m.status)
	}
	return fit(status, m.width) + "\n" + m.help.View(m.keys)
}

// Run starts the interactive board on the alternate screen with mouse
// tracking enabled.
func Run(ctx context.Context, opts Options) error {
	profile := profileDefault
	if opts.Config != nil && opts.Config.TUI != nil && opts.Config.TUI.Profile != "" {
		profile = opts.Config.TUI.Profile
	}
	applyColorProfile(profile)
	if opts.Config != nil && opts.Config.TUI != nil {
		applyGlyphPreference(opts.Config.TUI.Glyphs)
	} else {
		applyGlyphPreference("")
	}

	m, err := newAppModel(ctx, opts)
	if err != nil {
		return err
	}
	m.zones = zone.New()
	defer m.zones.Close()

	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func roundOffset(v float64) int { return int(math.Round(v)) }
