package dashboard

import (
	core "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// Page exposes the dashboard view-model.
type Page = core.Page

// PageOption re-export for convenience.
type PageOption = core.PageOption

// DataSource is implemented by the shopping client and its mock.
type DataSource = core.DataSource

// State is the immutable page snapshot.
type State = core.State

// Controller exposes the per-request page controller.
type Controller = core.Controller

// ControllerOptions re-export for convenience.
type ControllerOptions = core.ControllerOptions

// NewPage proxies to the internal constructor.
func NewPage(source DataSource, opts ...PageOption) *Page {
	return core.NewPage(source, opts...)
}

// NewController proxies to the internal constructor.
func NewController(opts ControllerOptions) *Controller {
	return core.NewController(opts)
}
