package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Navigation targets reachable from the dashboard.
const (
	PathItemsMine   = "/items/me"
	PathItemsCreate = "/items/create"
	PathLists       = "/lists"
	PathListAdd     = "/list/current/add"
	PathListCurrent = "/list/current"
	PathBudgets     = "/budgets"
	PathMetrics     = "/metrics"
)

var (
	errMissingSource  = errors.New("dashboard: data source not configured")
	errAlreadyMounted = errors.New("dashboard: page already mounted")
	errUnmounted      = errors.New("dashboard: page unmounted")
)

type dialogButton struct {
	text    string
	variant ButtonVariant
	target  string
}

type dialogDef struct {
	title   string
	text    string
	buttons []dialogButton
}

var dialogDefs = map[DialogID]dialogDef{
	DialogItems: {
		title: "View or create items",
		text:  "Would you like to create a new item or view existing items?",
		buttons: []dialogButton{
			{text: "View items", variant: VariantPrimary, target: PathItemsMine},
			{text: "Create item", variant: VariantPrimary, target: PathItemsCreate},
		},
	},
	DialogList: {
		title: "View shopping lists or add items to shopping lists",
		text:  "Would you like to view all your shopping lists or add items to your current shopping list?",
		buttons: []dialogButton{
			{text: "View shopping list", variant: VariantPrimary, target: PathLists},
			{text: "Add items to shopping list", variant: VariantPrimary, target: PathListAdd},
		},
	},
}

// Listener is notified after every applied event with the new snapshot and the
// slice that changed.
type Listener func(state State, changed Slice)

// Page is the dashboard view-model. It owns the page state, fires the three
// fetches on Mount and applies every change through Reduce.
type Page struct {
	source    DataSource
	telemetry Telemetry

	mu        sync.Mutex
	state     State
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	group     *errgroup.Group
	listeners map[int]Listener
	nextID    int
	errs      []error
}

// PageOption customizes a Page.
type PageOption func(*Page)

// WithPageTelemetry reports fetch outcomes to the given sink.
func WithPageTelemetry(t Telemetry) PageOption {
	return func(p *Page) {
		p.telemetry = t
	}
}

// NewPage builds a page around an injected data source.
func NewPage(source DataSource, opts ...PageOption) *Page {
	p := &Page{
		source:    source,
		state:     InitialState(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.telemetry = normalizeTelemetry(p.telemetry)
	return p
}

// Mount starts the summary, history and recent item fetches concurrently.
// It returns immediately; use Wait to block until all three settle.
func (p *Page) Mount(ctx context.Context) error {
	if p.source == nil {
		return errMissingSource
	}
	p.mu.Lock()
	if p.unmounted {
		p.mu.Unlock()
		return errUnmounted
	}
	if p.mounted {
		p.mu.Unlock()
		return errAlreadyMounted
	}
	ctx, cancel := context.WithCancel(ctx)
	p.mounted = true
	p.cancel = cancel
	group := &errgroup.Group{}
	p.group = group
	p.mu.Unlock()

	group.Go(func() error {
		return load(ctx, p, SliceSummary, p.source.FetchCurrentSummary, func(v DashboardCurrent) Event {
			return SummaryLoaded{Summary: v}
		})
	})
	group.Go(func() error {
		return load(ctx, p, SliceChart, p.source.FetchHistory, func(v DashboardHistory) Event {
			return HistoryLoaded{History: v}
		})
	})
	group.Go(func() error {
		return load(ctx, p, SliceRecentItems, p.source.FetchRecentItems, func(v RecentItems) Event {
			return RecentItemsLoaded{Items: v}
		})
	})

	p.telemetry.Record(ctx, "dashboard.page.mount", nil)
	return nil
}

// Wait blocks until every fetch started by Mount has completed and returns
// the joined fetch errors. Per-slice errors are also kept in State.Errors.
func (p *Page) Wait() error {
	p.mu.Lock()
	group := p.group
	p.mu.Unlock()
	if group == nil {
		return nil
	}
	_ = group.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

// Load mounts the page and waits for the fetches to settle.
func (p *Page) Load(ctx context.Context) (State, error) {
	if err := p.Mount(ctx); err != nil {
		return p.Snapshot(), err
	}
	err := p.Wait()
	return p.Snapshot(), err
}

// Unmount cancels in-flight fetches. Any result arriving afterwards is
// dropped instead of written to state.
func (p *Page) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return
	}
	p.unmounted = true
	if p.cancel != nil {
		p.cancel()
	}
	p.listeners = map[int]Listener{}
}

// Snapshot returns the current state.
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Dispatch applies an event. It reports false when the page is unmounted and
// the event was dropped.
func (p *Page) Dispatch(event Event) bool {
	if event == nil {
		return false
	}
	p.mu.Lock()
	if p.unmounted {
		p.mu.Unlock()
		return false
	}
	p.state = Reduce(p.state, event)
	state := p.state
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	changed := SliceOf(event)
	for _, l := range listeners {
		l(state, changed)
	}
	return true
}

// Subscribe registers a listener and returns its cancel func.
func (p *Page) Subscribe(l Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// Dialog builds the props for one of the page dialogs. The closures dispatch
// into this page, so the props must not outlive it.
func (p *Page) Dialog(id DialogID) (ButtonDialogProps, bool) {
	if _, ok := dialogDefs[id]; !ok {
		return ButtonDialogProps{}, false
	}
	props := dialogProps(id, p.Snapshot().DialogOpen(id), ViewLinks{})
	p.attachDialogHandlers(id, &props)
	return props, true
}

func (p *Page) attachDialogHandlers(id DialogID, props *ButtonDialogProps) {
	for i := range props.Buttons {
		target, _ := DialogTarget(id, i)
		props.Buttons[i].OnClick = func() {
			p.Dispatch(CloseDialog{Dialog: id})
			p.Dispatch(Navigate{Target: target})
		}
	}
	props.OnClose = func() {
		p.Dispatch(CloseDialog{Dialog: id})
	}
}

// ItemsDialog is the "view or create items" dialog.
func (p *Page) ItemsDialog() ButtonDialogProps {
	props, _ := p.Dialog(DialogItems)
	return props
}

// ListDialog is the "view shopping lists or add items" dialog.
func (p *Page) ListDialog() ButtonDialogProps {
	props, _ := p.Dialog(DialogList)
	return props
}

// OpenDialog opens a dialog in response to a card interaction.
func (p *Page) OpenDialog(id DialogID) {
	p.Dispatch(OpenDialog{Dialog: id})
}

func load[T any](ctx context.Context, p *Page, slice Slice, fetch func(context.Context) (Result[T], error), loaded func(T) Event) error {
	result, err := fetch(ctx)
	if err != nil {
		err = fmt.Errorf("dashboard: fetch %s: %w", slice, err)
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
		p.Dispatch(FetchFailed{Slice: slice, Err: err})
		p.telemetry.Record(ctx, "dashboard.fetch.error", map[string]any{
			"slice": string(slice),
			"error": err.Error(),
		})
		return err
	}
	if result.IsUnauthorized() {
		p.Dispatch(UnauthorizedReceived{Slice: slice})
		p.telemetry.Record(ctx, "dashboard.fetch.unauthorized", map[string]any{
			"slice": string(slice),
		})
		return nil
	}
	p.Dispatch(loaded(result.Data))
	return nil
}
