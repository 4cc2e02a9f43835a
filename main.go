package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/api"
	"github.com/pink-tools/pink-jdk/internal/app"
	"github.com/pink-tools/pink-jdk/internal/cli"
	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/tray"
)

var version = "dev"

func main() {
	otel.Init(config.AppName, version)

	d := cli.DefaultDeps(version)
	d.RunTray = runTray

	if err := cli.Execute(d, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTray serves the local API and blocks in the tray loop. The listening
// port doubles as the single-instance check.
func runTray(a *app.App) error {
	apiServer, err := api.NewServer(a)
	if err != nil {
		return fmt.Errorf("tray already running on %s: %w", api.Addr(), err)
	}
	go apiServer.Start()

	otel.Info(context.Background(), "started "+version, otel.Attr{K: "port", V: config.Port()})

	t := tray.New(a, apiServer.Close)
	t.Run()
	return nil
}
