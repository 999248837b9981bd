package tui

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/propfocus/internal/logging"
	"github.com/rshade/propfocus/internal/property"
	listview "github.com/rshade/propfocus/internal/tui/list"
)

// PropertyLoadErrorText is the only text shown when the property list cannot be loaded.
// The underlying cause goes to the log.
const PropertyLoadErrorText = "Failed to load properties. Please try again."

var errNoPropertyProvider = errors.New("no property provider configured")

// PropertyProvider fetches the property list.
type PropertyProvider interface {
	GetProperties(ctx context.Context) (*property.ListResponse, error)
}

// propertiesLoadedMsg carries the result of one property fetch. generation
// identifies the fetch that produced it.
type propertiesLoadedMsg struct {
	generation uint64
	properties []property.Property
	err        error
}

// SelectPropertyMsg asks the dashboard to select a property by ID.
type SelectPropertyMsg struct {
	ID string
}

// DashboardOption configures a DashboardModel.
type DashboardOption func(*DashboardModel)

// WithRevenuePeriod sets the YYYY-MM period the revenue view requests.
func WithRevenuePeriod(period string) DashboardOption {
	return func(m *DashboardModel) {
		m.period = period
	}
}

// WithSize sets the initial layout size before the first WindowSizeMsg.
func WithSize(width, height int) DashboardOption {
	return func(m *DashboardModel) {
		if width > 0 {
			m.width = width
		}
		if height > 0 {
			m.height = height
		}
	}
}

// DashboardModel loads the property list once, lets the user pick a property and
// shows the revenue summary for the selection.
//
// The model must not be copied after creation.
type DashboardModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	// active is cleared by Unmount. Results arriving afterwards are discarded.
	active atomic.Bool

	provider   PropertyProvider
	generation uint64
	fetched    bool

	state      ViewState
	properties []property.Property
	selected   string
	errText    string

	selector *listview.VirtualListModel[property.Property]
	loading  *LoadingState
	revenue  *RevenueSummaryModel
	period   string

	width  int
	height int
	logger zerolog.Logger
}

// NewDashboardModel creates a dashboard in the Loading state. Nothing is fetched
// until Init (or Load) runs.
func NewDashboardModel(
	ctx context.Context,
	provider PropertyProvider,
	revenue RevenueProvider,
	opts ...DashboardOption,
) *DashboardModel {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	m := &DashboardModel{
		ctx:      ctx,
		cancel:   cancel,
		provider: provider,
		state:    ViewStateLoading,
		loading:  NewLoadingState(),
		width:    defaultWidth,
		height:   defaultHeight,
		logger:   logging.ComponentLogger(*logging.FromContext(ctx), "dashboard"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.revenue = NewRevenueSummaryModel(ctx, revenue, m.period)
	m.revenue.width = m.width
	m.active.Store(true)
	return m
}

// Init starts the spinner and issues the property fetch.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.Load())
}

// Load returns the command that fetches the property list. Only the first call
// returns a command; the list is fetched once per model.
func (m *DashboardModel) Load() tea.Cmd {
	if m.fetched {
		return nil
	}
	m.fetched = true
	m.state = ViewStateLoading
	m.generation++

	ctx, provider, generation := m.ctx, m.provider, m.generation
	m.logger.Debug().Ctx(ctx).Uint64("generation", generation).Msg("fetching properties")
	return func() tea.Msg {
		if provider == nil {
			return propertiesLoadedMsg{generation: generation, err: errNoPropertyProvider}
		}
		resp, err := provider.GetProperties(ctx)
		if err != nil {
			return propertiesLoadedMsg{generation: generation, err: err}
		}
		return propertiesLoadedMsg{generation: generation, properties: resp.Properties()}
	}
}

// Update handles messages (Bubble Tea interface).
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.active.Load() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeSelector()
		return m, m.revenue.Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case propertiesLoadedMsg:
		return m, m.handleLoaded(msg)
	case SelectPropertyMsg:
		cmd, _ := m.SelectProperty(msg.ID)
		return m, cmd
	case revenueLoadedMsg:
		return m, m.revenue.Update(msg)
	}

	var cmds []tea.Cmd
	if m.state == ViewStateLoading {
		cmds = append(cmds, m.loading.Update(msg))
	}
	cmds = append(cmds, m.revenue.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.Unmount()
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	if m.state != ViewStateReady || m.selector == nil || m.selector.ItemCount() == 0 {
		return m, nil
	}
	m.selector.Update(msg)
	item := m.selector.GetSelectedItem()
	if item == nil || item.ID == m.selected {
		return m, nil
	}
	return m, m.setSelected(item.ID)
}

func (m *DashboardModel) handleLoaded(msg propertiesLoadedMsg) tea.Cmd {
	if msg.generation != m.generation {
		m.logger.Debug().Uint64("generation", msg.generation).Msg("dropping stale property result")
		return nil
	}

	err := msg.err
	if err == nil {
		err = property.ValidateList(msg.properties)
	}
	if err != nil {
		m.logger.Error().Ctx(m.ctx).Err(err).Msg("Failed to fetch properties")
		m.state = ViewStateError
		m.errText = PropertyLoadErrorText
		m.properties = nil
		return nil
	}

	m.properties = msg.properties
	m.state = ViewStateReady
	m.selector = listview.NewVirtualListModel(m.properties, m.selectorRows(), m.width, renderPropertyRow)
	m.logger.Info().Ctx(m.ctx).Int("count", len(m.properties)).Msg("properties loaded")

	if len(m.properties) == 0 {
		return nil
	}
	return m.setSelected(m.properties[0].ID)
}

// SelectProperty selects the property with the given ID. It reports false and
// changes nothing when the list is not loaded or the ID is not in it.
func (m *DashboardModel) SelectProperty(id string) (tea.Cmd, bool) {
	if m.state != ViewStateReady {
		return nil, false
	}
	idx := property.IndexOf(m.properties, id)
	if idx < 0 {
		return nil, false
	}
	if m.selector != nil {
		m.selector.SetSelected(idx)
	}
	if id == m.selected {
		return nil, true
	}
	return m.setSelected(id), true
}

// setSelected records the selection and hands it to the revenue view.
func (m *DashboardModel) setSelected(id string) tea.Cmd {
	m.selected = id
	m.logger.Debug().Ctx(m.ctx).Str("property_id", id).Msg("property selected")
	return m.revenue.SetPropertyID(id)
}

// Unmount deactivates the model and cancels any outstanding request. It is safe
// to call more than once and from any goroutine.
func (m *DashboardModel) Unmount() {
	if m.active.CompareAndSwap(true, false) {
		m.cancel()
	}
}

// Active reports whether the model still applies results.
func (m *DashboardModel) Active() bool {
	return m.active.Load()
}

// State returns the property load state.
func (m *DashboardModel) State() ViewState {
	return m.state
}

// Selected returns the selected property ID, or "" when nothing is selected.
func (m *DashboardModel) Selected() string {
	return m.selected
}

// SelectedProperty returns the selected property, or false when nothing is selected.
func (m *DashboardModel) SelectedProperty() (property.Property, bool) {
	return property.Find(m.properties, m.selected)
}

// Properties returns the loaded list in received order.
func (m *DashboardModel) Properties() []property.Property {
	return m.properties
}

// ErrorText returns the user-facing error, or "".
func (m *DashboardModel) ErrorText() string {
	return m.errText
}

// Revenue returns the child revenue view.
func (m *DashboardModel) Revenue() *RevenueSummaryModel {
	return m.revenue
}

// RevenuePropertyID returns the ID the revenue view was handed, or "" when the
// view is not rendered.
func (m *DashboardModel) RevenuePropertyID() string {
	if m.selected == "" {
		return ""
	}
	return m.revenue.PropertyID()
}

func (m *DashboardModel) selectorRows() int {
	return max(min(selectorHeight, m.height-chromeHeight), minHeight)
}

func (m *DashboardModel) resizeSelector() {
	if m.selector == nil {
		return
	}
	idx := m.selector.Selected()
	m.selector = listview.NewVirtualListModel(m.properties, m.selectorRows(), m.width, renderPropertyRow)
	m.selector.SetSelected(idx)
}
