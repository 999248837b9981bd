package tui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/propfocus/internal/property"
)

type fakePropertyProvider struct {
	resp  *property.ListResponse
	err   error
	calls atomic.Int32

	mu  sync.Mutex
	ctx context.Context
}

func (f *fakePropertyProvider) GetProperties(ctx context.Context) (*property.ListResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.ctx = ctx
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.resp, f.err
}

func (f *fakePropertyProvider) lastContext() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

type fakeRevenueProvider struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeRevenueProvider) GetRevenueSummary(
	_ context.Context,
	propertyID, period string,
) (*property.RevenueSummary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, propertyID)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &property.RevenueSummary{
		PropertyID:       propertyID,
		Period:           period,
		Currency:         "USD",
		TotalRevenue:     1234.5,
		Reservations:     12,
		OccupancyRate:    0.5,
		AverageDailyRate: 102.875,
	}, nil
}

func (f *fakeRevenueProvider) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// runCmd executes cmd and returns the messages it produces, expanding batches
// and skipping spinner ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// drive settles the model on the messages produced by cmd.
func drive(t *testing.T, m *DashboardModel, cmd tea.Cmd) {
	t.Helper()
	got := Settle(m, cmd)
	require.Same(t, m, got)
}

func listOf(props ...property.Property) []property.Property {
	return props
}

func TestNewDashboardModel(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Empty(t, m.Selected())
	assert.Empty(t, m.ErrorText())
	assert.True(t, m.Active())
	assert.Contains(t, m.View(), "Loading...")
	assert.Contains(t, m.View(), "Property Management Dashboard")
}

func TestDashboard_DataEnvelopeSelectsFirst(t *testing.T) {
	provider := &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "p1", Name: "Beach House", Timezone: "UTC"}),
	}}
	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(context.Background(), provider, revenue)

	drive(t, m, m.Init())

	assert.Equal(t, ViewStateReady, m.State())
	assert.Equal(t, "p1", m.Selected())
	assert.Equal(t, "p1", m.RevenuePropertyID())
	assert.Equal(t, []string{"p1"}, revenue.requested())
	assert.Equal(t, ViewStateReady, m.Revenue().State())

	view := m.View()
	assert.Contains(t, view, "Beach House")
	assert.Contains(t, view, "Revenue Summary")
	assert.Contains(t, view, "$1,234.50")
	assert.Contains(t, view, "50.0%")
}

func TestDashboard_EnvelopesYieldSameList(t *testing.T) {
	props := listOf(
		property.Property{ID: "a", Name: "Alpha"},
		property.Property{ID: "b", Name: "Bravo"},
	)
	for name, resp := range map[string]*property.ListResponse{
		"data":  {Data: props},
		"items": {Items: props},
	} {
		t.Run(name, func(t *testing.T) {
			m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: resp}, &fakeRevenueProvider{})
			drive(t, m, m.Init())

			assert.Equal(t, props, m.Properties())
			assert.Equal(t, "a", m.Selected())
		})
	}
}

func TestDashboard_EmptyItemsLeavesSelectionUnset(t *testing.T) {
	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(context.Background(),
		&fakePropertyProvider{resp: &property.ListResponse{Items: []property.Property{}}}, revenue)

	drive(t, m, m.Init())

	assert.Equal(t, ViewStateReady, m.State())
	assert.Empty(t, m.Selected())
	assert.Empty(t, m.RevenuePropertyID())
	assert.Empty(t, revenue.requested())
	assert.NotContains(t, m.View(), "Revenue Summary")
	assert.Contains(t, m.View(), "No properties available.")
}

func TestDashboard_MissingEnvelopeIsEmpty(t *testing.T) {
	for name, resp := range map[string]*property.ListResponse{
		"no fields":   {},
		"nil payload": nil,
	} {
		t.Run(name, func(t *testing.T) {
			m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: resp}, &fakeRevenueProvider{})
			drive(t, m, m.Init())

			assert.Equal(t, ViewStateReady, m.State())
			assert.Empty(t, m.Properties())
			assert.Empty(t, m.Selected())
			assert.NotContains(t, m.View(), "Revenue Summary")
		})
	}
}

func TestDashboard_FetchFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(ctx, &fakePropertyProvider{err: errors.New("connection refused")}, revenue)

	drive(t, m, m.Init())

	assert.Equal(t, ViewStateError, m.State())
	assert.Equal(t, "Failed to load properties. Please try again.", m.ErrorText())
	assert.Empty(t, m.Selected())
	assert.Empty(t, revenue.requested())

	view := m.View()
	assert.Contains(t, view, PropertyLoadErrorText)
	assert.NotContains(t, view, "connection refused")
	assert.NotContains(t, view, "Revenue Summary")
	assert.Contains(t, view, "Property Management Dashboard", "chrome stays rendered on error")

	assert.Contains(t, buf.String(), "Failed to fetch properties")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestDashboard_MalformedListIsFailure(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a"}, property.Property{ID: "a"}),
	}}, &fakeRevenueProvider{})

	drive(t, m, m.Init())

	assert.Equal(t, ViewStateError, m.State())
	assert.Equal(t, PropertyLoadErrorText, m.ErrorText())
	assert.Empty(t, m.Properties())
}

func TestDashboard_NilProviderIsFailure(t *testing.T) {
	m := NewDashboardModel(context.Background(), nil, nil)
	drive(t, m, m.Init())
	assert.Equal(t, ViewStateError, m.State())
}

func TestDashboard_UserSelectsSecond(t *testing.T) {
	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a", Name: "A"}, property.Property{ID: "b", Name: "B"}),
	}}, revenue)
	drive(t, m, m.Init())
	require.Equal(t, "a", m.Selected())

	cmd, ok := m.SelectProperty("b")
	require.True(t, ok)
	assert.Equal(t, "b", m.Selected(), "selection changes synchronously")
	assert.Equal(t, "b", m.RevenuePropertyID())
	assert.Equal(t, ViewStateLoading, m.Revenue().State())

	drive(t, m, cmd)
	assert.Equal(t, []string{"a", "b"}, revenue.requested())
	assert.Equal(t, "b", m.Revenue().Summary().PropertyID)

	selected, ok := m.SelectedProperty()
	require.True(t, ok)
	assert.Equal(t, "B", selected.Name)
}

func TestDashboard_SelectedPropertyUnsetOnFailure(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{err: errors.New("boom")}, &fakeRevenueProvider{})
	drive(t, m, m.Init())

	_, ok := m.SelectedProperty()
	assert.False(t, ok)
}

func TestDashboard_KeyboardSelection(t *testing.T) {
	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Items: listOf(
			property.Property{ID: "a", Name: "A"},
			property.Property{ID: "b", Name: "B"},
			property.Property{ID: "c", Name: "C"},
		),
	}}, revenue)
	drive(t, m, m.Init())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "b", m.Selected())
	drive(t, m, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, "c", m.Selected())
	drive(t, m, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd, "no change at the end of the list")
	assert.Equal(t, "c", m.Selected())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "b", m.Selected())
	drive(t, m, cmd)

	assert.Equal(t, []string{"a", "b", "c", "b"}, revenue.requested())
}

func TestDashboard_SelectPropertyRejectsUnknownID(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a"}),
	}}, &fakeRevenueProvider{})

	cmd, ok := m.SelectProperty("a")
	assert.False(t, ok, "nothing is selectable while loading")
	assert.Nil(t, cmd)

	drive(t, m, m.Init())

	cmd, ok = m.SelectProperty("zzz")
	assert.False(t, ok)
	assert.Nil(t, cmd)
	assert.Equal(t, "a", m.Selected())

	cmd, ok = m.SelectProperty("a")
	assert.True(t, ok, "reselecting the current property is allowed")
	assert.Nil(t, cmd)
}

func TestDashboard_SelectPropertyMsg(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a"}, property.Property{ID: "b"}),
	}}, &fakeRevenueProvider{})
	drive(t, m, m.Init())

	_, cmd := m.Update(SelectPropertyMsg{ID: "b"})
	assert.NotNil(t, cmd)
	assert.Equal(t, "b", m.Selected())
}

func TestDashboard_KeysIgnoredWhileLoading(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Empty(t, m.Selected())
}

func TestDashboard_FetchesOnce(t *testing.T) {
	provider := &fakePropertyProvider{resp: &property.ListResponse{Data: listOf(property.Property{ID: "a"})}}
	m := NewDashboardModel(context.Background(), provider, &fakeRevenueProvider{})

	drive(t, m, m.Init())
	drive(t, m, m.Init())
	assert.Nil(t, m.Load())

	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestDashboard_ResultAfterUnmountIsDiscarded(t *testing.T) {
	provider := &fakePropertyProvider{resp: &property.ListResponse{Data: listOf(property.Property{ID: "a"})}}
	revenue := &fakeRevenueProvider{}
	m := NewDashboardModel(context.Background(), provider, revenue)

	fetch := m.Load()
	require.NotNil(t, fetch)

	m.Unmount()
	msgs := runCmd(fetch)
	require.Len(t, msgs, 1)
	require.Error(t, provider.lastContext().Err(), "unmount cancels the request context")

	_, cmd := m.Update(msgs[0])
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateLoading, m.State(), "state of an unmounted model is not touched")
	assert.Empty(t, m.Selected())
	assert.Empty(t, m.ErrorText())
	assert.Empty(t, revenue.requested())
	assert.False(t, m.Active())

	// A second Unmount is harmless.
	m.Unmount()
}

func TestDashboard_LateSuccessAfterUnmountIsDiscarded(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})
	fetch := m.Load()
	require.NotNil(t, fetch)
	m.Unmount()

	_, _ = m.Update(propertiesLoadedMsg{
		generation: 1,
		properties: listOf(property.Property{ID: "late"}),
	})
	assert.Empty(t, m.Selected())
	assert.Empty(t, m.Properties())
}

func TestDashboard_StaleGenerationIsDiscarded(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})
	require.NotNil(t, m.Load())

	_, cmd := m.Update(propertiesLoadedMsg{
		generation: 42,
		properties: listOf(property.Property{ID: "stale"}),
	})
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Empty(t, m.Selected())
}

func TestDashboard_QuitUnmounts(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Active())
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestDashboard_WindowResize(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a"}, property.Property{ID: "b"}),
	}}, &fakeRevenueProvider{}, WithSize(120, 40))
	drive(t, m, m.Init())
	_, _ = m.SelectProperty("b")

	_, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, "b", m.Selected())
	assert.Equal(t, 1, m.selector.Selected(), "cursor survives a resize")
}

func TestDashboard_RevenuePeriodIsForwarded(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a"}),
	}}, &fakeRevenueProvider{}, WithRevenuePeriod("2024-05"))
	drive(t, m, m.Init())

	require.NotNil(t, m.Revenue().Summary())
	assert.Equal(t, "2024-05", m.Revenue().Summary().Period)
}

func TestRenderSelectorText(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{resp: &property.ListResponse{
		Data: listOf(property.Property{ID: "a", Name: "Alpha"}, property.Property{ID: "b", Name: "Bravo"}),
	}}, &fakeRevenueProvider{})
	assert.Contains(t, RenderSelectorText(m), "Loading...")

	drive(t, m, m.Init())
	out := RenderSelectorText(m)
	assert.Contains(t, out, "* Alpha (a)")
	assert.Contains(t, out, "  Bravo (b)")

	failed := NewDashboardModel(context.Background(), &fakePropertyProvider{err: errors.New("x")}, nil)
	drive(t, failed, failed.Init())
	assert.Contains(t, RenderSelectorText(failed), PropertyLoadErrorText)
}

func TestSettle_StopsOnQuit(t *testing.T) {
	m := NewDashboardModel(context.Background(), &fakePropertyProvider{}, &fakeRevenueProvider{})
	quit := func() tea.Msg { return tea.QuitMsg{} }

	got := Settle(m, tea.Batch(quit, m.Load()))
	assert.Same(t, m, got)
	assert.Equal(t, ViewStateLoading, m.State(), "the fetch queued after quit never ran")
}
