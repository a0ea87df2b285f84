package gorouter

import (
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"
	"github.com/google/uuid"

	"github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// DefaultNamespace prefixes the dashboard route when none is configured.
const DefaultNamespace = "shopping"

// RequestIDHeader carries a caller-provided request id.
const RequestIDHeader = "X-Request-ID"

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	ViewerResolver ViewerResolver
	Telemetry      dashboard.Telemetry
	BasePath       string
	Namespace      string
	Routes         RouteConfig
}

// RouteConfig customizes the paths mounted under the dashboard route.
type RouteConfig struct {
	HTML         string
	State        string
	DialogAction string
}

// Path returns the dashboard page route for a base path and namespace.
func Path(base, namespace string) string {
	if strings.Trim(namespace, "/") == "" {
		namespace = DefaultNamespace
	}
	return dashboard.DashboardPath(base, namespace)
}

// Register mounts the dashboard routes (HTML page, JSON state, dialog actions)
// at <base>/<namespace>/dashboard/.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}
	h := newHandlers(cfg.Controller, cfg.Telemetry)

	group := cfg.Router.Group(strings.TrimSuffix(Path(cfg.BasePath, cfg.Namespace), "/"))

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, h.page(ctx.Context(), viewerResolver(ctx), ctx.Query("dialog")))
	}))

	group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, h.state(ctx.Context(), viewerResolver(ctx)))
	}))

	group.Get(routes.DialogAction, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, h.dialogAction(ctx.Context(), viewerResolver(ctx), ctx.Param("dialog"), ctx.Param("action")))
	}))

	return nil
}

func write(ctx router.Context, resp response) error {
	switch {
	case resp.Location != "":
		ctx.SetHeader("Location", resp.Location)
		return ctx.JSON(resp.Status, map[string]string{"redirect": resp.Location})
	case resp.Payload != nil:
		return ctx.JSON(resp.Status, resp.Payload)
	default:
		ctx.SetHeader("Content-Type", resp.ContentType)
		return ctx.Send(resp.Body)
	}
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	requestID := strings.TrimSpace(ctx.Header(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return dashboard.ViewerContext{
		RequestID: requestID,
		Locale:    inferLocale(ctx),
		Cookie:    ctx.Header("Cookie"),
	}
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return parseAcceptLanguage(ctx.Header("Accept-Language"))
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token = strings.TrimSpace(token); token != "" && token != "*" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.State == "" {
		routes.State = "/state"
	}
	if routes.DialogAction == "" {
		routes.DialogAction = "/dialogs/:dialog/:action"
	}
	return routes
}

func errorResponse(status int, err error) response {
	return response{Status: status, Payload: map[string]string{"error": err.Error()}}
}

func redirect(location string) response {
	return response{Status: http.StatusFound, Location: location}
}
