package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Zone ids for bubblezone hit detection. They are used both when rendering
// (mark) and when handling mouse input (inZone).
const (
	zoneBoard    = "board"
	zoneChipCard = "chip-card"
	zoneChipList = "chip-list"
)

func (m *appModel) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func (m *appModel) scan(s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Scan(s)
}

func (m *appModel) inZone(id string, msg tea.MouseMsg) bool {
	if m.zoneHit != nil {
		return m.zoneHit(id, msg)
	}
	if m.zones == nil {
		return false
	}
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// zoneBounds returns the inclusive cell bounds of a zone seen by the last
// scan.
func (m *appModel) zoneBounds(id string) (x0, y0, x1, y1 int, ok bool) {
	if m.zones == nil {
		return 0, 0, 0, 0, false
	}
	z := m.zones.Get(id)
	if z == nil || z.IsZero() {
		return 0, 0, 0, 0, false
	}
	return z.StartX, z.StartY, z.EndX, z.EndY, true
}
