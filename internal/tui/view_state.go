package tui

// ViewState is the load state of a view.
type ViewState int

const (
	// ViewStateIdle means nothing has been requested yet.
	ViewStateIdle ViewState = iota
	// ViewStateLoading means a fetch is outstanding.
	ViewStateLoading
	// ViewStateReady means data arrived and is displayed.
	ViewStateReady
	// ViewStateError means the fetch failed.
	ViewStateError
	// ViewStateQuitting means the program is exiting.
	ViewStateQuitting
)

// String returns the state name for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateIdle:
		return "idle"
	case ViewStateLoading:
		return "loading"
	case ViewStateReady:
		return "ready"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
)

// Layout defaults.
const (
	defaultWidth   = 80
	defaultHeight  = 24
	minHeight      = 3
	borderPadding  = 2
	chromeHeight   = 14
	selectorHeight = 6
)
