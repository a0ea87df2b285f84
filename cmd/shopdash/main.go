package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config string   `short:"c" type:"path" help:"Path to a YAML configuration file."`
	Env    []string `default:".env" help:"Env files to load before reading SHOPDASH_* variables."`

	Serve    serveCmd    `cmd:"" default:"1" help:"Serve the shopping dashboard."`
	Snapshot snapshotCmd `cmd:"" help:"Fetch the dashboard once and print the page state as YAML."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("shopdash"),
		kong.Description("Server-rendered shopping and budget dashboard."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.Bind(&root),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
