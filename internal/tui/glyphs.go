package tui

import (
	"os"
	"strings"
	"sync"
)

// glyphEnv overrides the configured glyph set.
const glyphEnv = "DRAGBOARD_TUI_GLYPHS"

// glyphTable holds the symbols the board draws. Fonts without the box and
// arrow characters get the ascii table.
type glyphTable struct {
	handle    string
	expanded  string
	collapsed string
	bullet    string
	lockedDot string
	ellipsis  string
	corner    string
	hrule     string
	boardEnd  string
}

var (
	unicodeGlyphs = glyphTable{
		handle: "≡", expanded: "▾", collapsed: "▸",
		bullet: "•", lockedDot: "◦", ellipsis: "…",
		corner: "└", hrule: "─", boardEnd: "══",
	}
	asciiGlyphs = glyphTable{
		handle: "=", expanded: "v", collapsed: ">",
		bullet: "*", lockedDot: "o", ellipsis: "...",
		corner: "`", hrule: "-", boardEnd: "==",
	}
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = unicodeGlyphs
)

// applyGlyphPreference selects the glyph set from the environment, falling
// back to pref. Unknown values keep the current set.
func applyGlyphPreference(pref string) {
	v := strings.TrimSpace(os.Getenv(glyphEnv))
	if v == "" {
		v = pref
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(unicodeGlyphs)
	case "ascii":
		setGlyphs(asciiGlyphs)
	}
}

func setGlyphs(g glyphTable) {
	glyphsMu.Lock()
	currentGlyphs = g
	glyphsMu.Unlock()
}

func glyphs() glyphTable {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}
