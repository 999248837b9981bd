package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected reports whether the item holds the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a single-selection list that renders only the rows inside
// its viewport. The window scrolls just enough to keep the selection visible.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the cursor index; 0 for an empty list.
	selected int
	// offset is the first row inside the viewport.
	offset int

	height int
	width  int
}

// NewVirtualListModel creates a list over items with the given viewport size.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	if height < 1 {
		height = 1
	}
	return &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys and resizes on window messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.scrollToSelected()
	}
	return m, nil
}

func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}
	switch msg.String() {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "pgup":
		m.SetSelected(m.selected - m.height)
	case "pgdown":
		m.SetSelected(m.selected + m.height)
	case "home", "g":
		m.SetSelected(0)
	case "end", "G":
		m.SetSelected(len(m.items) - 1)
	}
}

// scrollToSelected adjusts offset so the selected row is inside the viewport.
func (m *VirtualListModel[T]) scrollToSelected() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	if maxOffset := len(m.items) - m.height; m.offset > maxOffset {
		m.offset = max(maxOffset, 0)
	}
}

// View renders the rows inside the viewport.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	from, to := m.VisibleFrom(), m.VisibleTo()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and moves the cursor back to the first row.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.offset = 0
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the cursor, clamped to the list bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(index, 0), len(m.items)-1)
	m.scrollToSelected()
}

// VisibleFrom returns the first visible index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.offset
}

// VisibleTo returns the last visible index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return min(m.offset+m.height, len(m.items))
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// GetSelectedItem returns the item under the cursor, or nil for an empty list.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
