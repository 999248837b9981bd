// Package listview provides a generic single-selection list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, and the window scrolls to keep
// the cursor visible. Navigation keys: up/down, j/k, pgup/pgdown, home/end, g/G.
package listview
