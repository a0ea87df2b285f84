package dashboard

// Slice names the independent parts of page state. Each fetch writes exactly one.
type Slice string

const (
	SliceSummary     Slice = "summary"
	SliceChart       Slice = "chart"
	SliceRecentItems Slice = "recent_items"
	SliceDialogs     Slice = "dialogs"
	SliceNavigation  Slice = "navigation"
)

// DialogID identifies one of the page-owned dialogs.
type DialogID string

const (
	DialogItems DialogID = "items"
	DialogList  DialogID = "lists"
)

// ParseDialogID validates a dialog name coming from a URL.
func ParseDialogID(value string) (DialogID, bool) {
	switch DialogID(value) {
	case DialogItems:
		return DialogItems, true
	case DialogList:
		return DialogList, true
	default:
		return "", false
	}
}

// State is an immutable snapshot of the dashboard page. Reduce never mutates
// its input; slices held by a State must be treated as read-only.
type State struct {
	Summary         *DashboardCurrent `json:"summary" yaml:"summary"`
	Chart           ChartData         `json:"chart" yaml:"chart"`
	RecentItems     []Item            `json:"recent_items" yaml:"recent_items"`
	ItemsDialogOpen bool              `json:"items_dialog_open" yaml:"items_dialog_open"`
	ListDialogOpen  bool              `json:"list_dialog_open" yaml:"list_dialog_open"`
	Loaded          map[Slice]bool    `json:"loaded" yaml:"loaded"`
	Errors          map[Slice]string  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Unauthorized    bool              `json:"unauthorized" yaml:"unauthorized"`
	Navigation      string            `json:"navigation,omitempty" yaml:"navigation,omitempty"`
}

// InitialState is the first-render snapshot: nothing loaded, dialogs closed.
func InitialState() State {
	return State{
		Chart:       ChartData{Labels: []string{}, Datasets: []ChartDataset{}},
		RecentItems: []Item{},
		Loaded:      map[Slice]bool{},
	}
}

// IsLoaded reports whether a slice has received its data.
func (s State) IsLoaded(slice Slice) bool {
	return s.Loaded[slice]
}

// DialogOpen reports whether the given dialog is open.
func (s State) DialogOpen(id DialogID) bool {
	switch id {
	case DialogItems:
		return s.ItemsDialogOpen
	case DialogList:
		return s.ListDialogOpen
	default:
		return false
	}
}

// Event is anything that changes page state.
type Event interface {
	slice() Slice
}

// SummaryLoaded replaces the summary snapshot.
type SummaryLoaded struct{ Summary DashboardCurrent }

// HistoryLoaded replaces the chart with a colorized history.
type HistoryLoaded struct{ History DashboardHistory }

// RecentItemsLoaded replaces the recent item list.
type RecentItemsLoaded struct{ Items RecentItems }

// FetchFailed records a failed fetch for one slice. Other slices are untouched.
type FetchFailed struct {
	Slice Slice
	Err   error
}

// UnauthorizedReceived marks the page as needing a redirect to the app root.
type UnauthorizedReceived struct{ Slice Slice }

// OpenDialog opens one of the page dialogs.
type OpenDialog struct{ Dialog DialogID }

// CloseDialog closes one of the page dialogs.
type CloseDialog struct{ Dialog DialogID }

// Navigate requests a client-side navigation to Target.
type Navigate struct{ Target string }

func (SummaryLoaded) slice() Slice { return SliceSummary }
func (HistoryLoaded) slice() Slice { return SliceChart }
func (RecentItemsLoaded) slice() Slice { return SliceRecentItems }
func (e FetchFailed) slice() Slice { return e.Slice }
func (UnauthorizedReceived) slice() Slice { return SliceNavigation }
func (OpenDialog) slice() Slice { return SliceDialogs }
func (CloseDialog) slice() Slice { return SliceDialogs }
func (Navigate) slice() Slice { return SliceNavigation }

// SliceOf returns the state slice an event writes.
func SliceOf(event Event) Slice {
	if event == nil {
		return ""
	}
	return event.slice()
}

// Reduce applies an event and returns the next snapshot.
func Reduce(state State, event Event) State {
	next := state
	next.Loaded = copyLoaded(state.Loaded)
	next.Errors = copyErrors(state.Errors)

	switch e := event.(type) {
	case SummaryLoaded:
		summary := CloneCurrent(e.Summary)
		next.Summary = &summary
		next.Loaded[SliceSummary] = true
		delete(next.Errors, SliceSummary)
	case HistoryLoaded:
		next.Chart = ColorizeHistory(e.History)
		next.Loaded[SliceChart] = true
		delete(next.Errors, SliceChart)
	case RecentItemsLoaded:
		next.RecentItems = append([]Item{}, e.Items.Items...)
		next.Loaded[SliceRecentItems] = true
		delete(next.Errors, SliceRecentItems)
	case FetchFailed:
		if next.Errors == nil {
			next.Errors = map[Slice]string{}
		}
		msg := "unknown error"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		next.Errors[e.Slice] = msg
	case UnauthorizedReceived:
		next.Unauthorized = true
		next.Navigation = RootPath
	case OpenDialog:
		setDialog(&next, e.Dialog, true)
	case CloseDialog:
		setDialog(&next, e.Dialog, false)
	case Navigate:
		next.Navigation = e.Target
	}
	return next
}

// RootPath is the application root the viewer is sent to on 401.
const RootPath = "/"

func setDialog(state *State, id DialogID, open bool) {
	switch id {
	case DialogItems:
		state.ItemsDialogOpen = open
	case DialogList:
		state.ListDialogOpen = open
	}
}

func copyLoaded(in map[Slice]bool) map[Slice]bool {
	out := make(map[Slice]bool, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyErrors(in map[Slice]string) map[Slice]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[Slice]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
