// Package tui is the interactive board: lists of cards that can be
// rearranged by dragging with the mouse.
package tui
