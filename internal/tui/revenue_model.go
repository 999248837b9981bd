package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/propfocus/internal/logging"
	"github.com/rshade/propfocus/internal/property"
)

// RevenueLoadErrorText is shown when a revenue summary cannot be fetched.
const RevenueLoadErrorText = "Failed to load revenue summary."

var errNoRevenueProvider = errors.New("no revenue provider configured")

// RevenueProvider fetches the revenue summary for one property.
type RevenueProvider interface {
	GetRevenueSummary(ctx context.Context, propertyID, period string) (*property.RevenueSummary, error)
}

// revenueLoadedMsg carries a summary fetch result. seq and propertyID identify
// the request so superseded results can be dropped.
type revenueLoadedMsg struct {
	seq        uint64
	propertyID string
	summary    *property.RevenueSummary
	err        error
}

// RevenueSummaryModel renders the revenue summary of the selected property.
// It owns no selection: the parent hands it a property ID and it re-fetches.
type RevenueSummaryModel struct {
	ctx      context.Context
	provider RevenueProvider
	period   string

	propertyID string
	seq        uint64
	state      ViewState
	summary    *property.RevenueSummary
	errText    string

	loading *LoadingState
	width   int
	logger  zerolog.Logger
}

// NewRevenueSummaryModel creates an idle revenue view. period is YYYY-MM, or
// empty for the server default.
func NewRevenueSummaryModel(ctx context.Context, provider RevenueProvider, period string) *RevenueSummaryModel {
	return &RevenueSummaryModel{
		ctx:      ctx,
		provider: provider,
		period:   period,
		state:    ViewStateIdle,
		loading:  NewLoadingState(),
		width:    defaultWidth,
		logger:   logging.ComponentLogger(*logging.FromContext(ctx), "revenue"),
	}
}

// SetPropertyID points the view at a property and returns the fetch command.
// Setting the current ID again is a no-op; an empty ID clears the view.
func (m *RevenueSummaryModel) SetPropertyID(id string) tea.Cmd {
	if id == m.propertyID {
		return nil
	}
	m.propertyID = id
	m.seq++
	m.summary = nil
	m.errText = ""

	if id == "" {
		m.state = ViewStateIdle
		return nil
	}
	m.state = ViewStateLoading
	return tea.Batch(m.fetch(id, m.seq), m.loading.Init())
}

func (m *RevenueSummaryModel) fetch(id string, seq uint64) tea.Cmd {
	ctx, provider, period := m.ctx, m.provider, m.period
	return func() tea.Msg {
		if provider == nil {
			return revenueLoadedMsg{seq: seq, propertyID: id, err: errNoRevenueProvider}
		}
		summary, err := provider.GetRevenueSummary(ctx, id, period)
		return revenueLoadedMsg{seq: seq, propertyID: id, summary: summary, err: err}
	}
}

// Update applies fetch results for the current request and advances the spinner.
func (m *RevenueSummaryModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case revenueLoadedMsg:
		m.handleLoaded(msg)
		return nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return nil
	}
	if m.state == ViewStateLoading {
		return m.loading.Update(msg)
	}
	return nil
}

func (m *RevenueSummaryModel) handleLoaded(msg revenueLoadedMsg) {
	if msg.seq != m.seq || msg.propertyID != m.propertyID {
		m.logger.Debug().
			Str("property_id", msg.propertyID).
			Uint64("seq", msg.seq).
			Msg("dropping superseded revenue result")
		return
	}
	if msg.err != nil {
		m.logger.Error().Ctx(m.ctx).Err(msg.err).
			Str("property_id", msg.propertyID).
			Msg("Failed to fetch revenue summary")
		m.state = ViewStateError
		m.errText = RevenueLoadErrorText
		return
	}
	if msg.summary == nil {
		msg.summary = &property.RevenueSummary{PropertyID: msg.propertyID}
	}
	m.summary = msg.summary
	m.state = ViewStateReady
}

// PropertyID returns the property the view currently shows.
func (m *RevenueSummaryModel) PropertyID() string {
	return m.propertyID
}

// State returns the view's load state.
func (m *RevenueSummaryModel) State() ViewState {
	return m.state
}

// Summary returns the loaded summary, or nil.
func (m *RevenueSummaryModel) Summary() *property.RevenueSummary {
	return m.summary
}

// ErrorText returns the user-facing error, or "".
func (m *RevenueSummaryModel) ErrorText() string {
	return m.errText
}

// View renders the summary box. An idle view renders nothing.
func (m *RevenueSummaryModel) View() string {
	var body string
	switch m.state {
	case ViewStateIdle, ViewStateQuitting:
		return ""
	case ViewStateLoading:
		body = RenderLoading(m.loading)
	case ViewStateError:
		body = CriticalStyle.Render(m.errText)
	case ViewStateReady:
		body = renderRevenueSummary(m.summary)
	}

	width := max(m.width-borderPadding*2, minHeight)
	return BoxStyle.Width(width).Render(HeaderStyle.Render("Revenue Summary") + "\n" + body)
}

// RenderRevenueText renders a summary as unstyled text for non-interactive output.
func RenderRevenueText(s *property.RevenueSummary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, row := range revenueRows(s) {
		fmt.Fprintf(&b, "%-20s %s\n", row[0]+":", row[1])
	}
	return b.String()
}

func renderRevenueSummary(s *property.RevenueSummary) string {
	rows := revenueRows(s)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, LabelStyle.Render(fmt.Sprintf("%-20s", row[0]+":"))+" "+ValueStyle.Render(row[1]))
	}
	return strings.Join(lines, "\n")
}

func revenueRows(s *property.RevenueSummary) [][2]string {
	period := s.Period
	if period == "" {
		period = "current month"
	}
	return [][2]string{
		{"Property", s.PropertyID},
		{"Period", period},
		{"Total revenue", FormatMoney(s.TotalRevenue, s.Currency)},
		{"Reservations", FormatCount(s.Reservations)},
		{"Occupancy", FormatPercent(s.OccupancyRate)},
		{"Average daily rate", FormatMoney(s.AverageDailyRate, s.Currency)},
	}
}
