package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-shopping-dashboard/components/dashboard"
	"github.com/goliatone/go-shopping-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-shopping-dashboard/pkg/config"
	"github.com/goliatone/go-shopping-dashboard/pkg/logging"
	"github.com/goliatone/go-shopping-dashboard/pkg/shopping"
)

type serveCmd struct {
	Mock bool `help:"Serve built-in fixtures instead of calling the backend."`
}

type snapshotCmd struct {
	Mock bool `help:"Use built-in fixtures instead of calling the backend."`
}

// app holds everything wired from configuration.
type app struct {
	cfg       config.Config
	logger    *logrus.Logger
	telemetry dashboard.Telemetry
	sources   func(dashboard.ViewerContext) dashboard.DataSource
	closers   []io.Closer
}

func newApp(root *cli, mock bool) (*app, error) {
	cfg, err := config.LoadWithOverrides(root.Config, root.Env, config.WithMockBackend(mock))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		File:     cfg.Log.File,
		NoColors: cfg.Log.NoColors,
	})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, telemetry: logging.NewTelemetry(logger)}

	if cfg.Backend.Mock {
		mockClient := shopping.NewMockClient(shopping.DefaultMockData())
		a.sources = func(dashboard.ViewerContext) dashboard.DataSource { return mockClient }
		return a, nil
	}
	client, err := shopping.NewHTTPClient(shopping.HTTPConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, err
	}
	a.sources = func(viewer dashboard.ViewerContext) dashboard.DataSource {
		return client.WithCookie(viewer.Cookie)
	}
	return a, nil
}

func (a *app) chartRenderer(ctx context.Context) *dashboard.BarChartRenderer {
	opts := []dashboard.BarChartOption{
		dashboard.WithChartCache(dashboard.NewChartCache(a.cfg.Chart.CacheTTL)),
	}
	if a.cfg.Chart.RedisURL != "" {
		cache, err := dashboard.NewRedisChartCacheFromURL(a.cfg.Chart.RedisURL, a.cfg.Chart.CacheTTL,
			dashboard.WithRedisTelemetry(a.telemetry))
		switch {
		case err != nil:
			a.logger.WithError(err).Warn("redis chart cache disabled")
		default:
			if err := cache.Ping(ctx); err != nil {
				a.logger.WithError(err).Warn("redis chart cache unreachable, charts render in-process until it recovers")
			}
			a.closers = append(a.closers, cache)
			opts[0] = dashboard.WithChartCache(cache)
		}
	}
	if a.cfg.Chart.Theme != "" {
		opts = append(opts, dashboard.WithChartTheme(a.cfg.Chart.Theme))
	}
	if a.cfg.Chart.AssetsHost != "" {
		opts = append(opts, dashboard.WithChartAssetsHost(a.cfg.Chart.AssetsHost))
	}
	if a.cfg.Chart.Height != "" {
		opts = append(opts, dashboard.WithChartHeight(a.cfg.Chart.Height))
	}
	return dashboard.NewBarChartRenderer(opts...)
}

func (a *app) controller(ctx context.Context, renderer dashboard.Renderer) *dashboard.Controller {
	var translator dashboard.TranslationService
	if len(a.cfg.Translations) > 0 {
		translator = dashboard.Translations(a.cfg.Translations)
	}
	return dashboard.NewController(dashboard.ControllerOptions{
		Pages:      dashboard.NewPageFactory(a.sources, dashboard.WithPageTelemetry(a.telemetry)),
		Renderer:   renderer,
		Charts:     a.chartRenderer(ctx),
		Links:      dashboard.ViewLinks{Dashboard: gorouter.Path(a.cfg.Server.BasePath, a.cfg.Server.Namespace)},
		Translator: translator,
		Telemetry:  a.telemetry,
	})
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.WithError(err).Warn("close")
		}
	}
}

func (cmd *serveCmd) Run(ctx context.Context, root *cli) error {
	a, err := newApp(root, cmd.Mock)
	if err != nil {
		return err
	}
	defer a.Close()

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("shopdash: template renderer: %w", err)
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: a.controller(ctx, renderer),
		Telemetry:  a.telemetry,
		BasePath:   a.cfg.Server.BasePath,
		Namespace:  a.cfg.Server.Namespace,
	}); err != nil {
		return fmt.Errorf("shopdash: register routes: %w", err)
	}

	a.logger.WithFields(logging.Fields{
		"address": a.cfg.Server.Address,
		"route":   gorouter.Path(a.cfg.Server.BasePath, a.cfg.Server.Namespace),
		"mock":    a.cfg.Backend.Mock,
	}).Info("dashboard ready")
	return server.Serve(a.cfg.Server.Address)
}

func (cmd *snapshotCmd) Run(ctx context.Context, root *cli) error {
	a, err := newApp(root, cmd.Mock)
	if err != nil {
		return err
	}
	defer a.Close()
	return writeSnapshot(ctx, a.sources(dashboard.ViewerContext{}), a.telemetry, os.Stdout)
}

// writeSnapshot loads one page and prints its state.
func writeSnapshot(ctx context.Context, source dashboard.DataSource, telemetry dashboard.Telemetry, out io.Writer) error {
	page := dashboard.NewPage(source, dashboard.WithPageTelemetry(telemetry))
	defer page.Unmount()

	state, err := page.Load(ctx)
	if err != nil && len(state.Errors) == 0 {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("shopdash: encode snapshot: %w", err)
	}
	return enc.Close()
}
