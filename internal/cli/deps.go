package cli

import (
	"context"
	"fmt"

	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/api"
	"github.com/pink-tools/pink-jdk/internal/app"
	"github.com/pink-tools/pink-jdk/internal/catalog"
	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/elevate"
	"github.com/pink-tools/pink-jdk/internal/envstore"
	"github.com/pink-tools/pink-jdk/internal/settings"
	"github.com/pink-tools/pink-jdk/internal/switcher"
	"github.com/pink-tools/pink-jdk/internal/sysenv"
)

// Deps are the outside pieces commands touch. Tests swap them for fakes.
type Deps struct {
	Version     string
	NewApp      func() (*app.App, error)
	MachinePath envstore.Store
	// Send talks to a running tray instance.
	Send    func(command, arg string) (string, error)
	RunTray func(a *app.App) error
}

// DefaultDeps wires commands to the real system. RunTray is left to the
// caller, which owns the GUI dependency.
func DefaultDeps(version string) *Deps {
	return &Deps{
		Version:     version,
		NewApp:      newSystemApp,
		MachinePath: envstore.Machine(),
		Send:        api.Send,
	}
}

func newSystemApp() (*app.App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	s, err := settings.Load()
	if err != nil {
		return nil, err
	}

	env := sysenv.New(envstore.Machine(), sysenv.WithUser(sysenv.UserSource()))
	orch := switcher.New(switcher.Options{
		Launcher: elevate.New(),
		Env:      env,
		Helper:   config.UpdaterBinary(),
		LockPath: config.SwitchLockFile(),
		Interval: s.PollInterval,
		Timeout:  s.PollTimeout,
		OnState: func(st switcher.State) {
			otel.Info(context.Background(), "switch", otel.Attr{K: "state", V: st.String()})
		},
	})

	save := func(next *settings.Settings) error {
		return settings.Save(config.SettingsFile(), next)
	}

	// Poll timings stay as started; only scan_dirs follow a reload.
	return app.New(app.Options{
		Catalog:        catalog.New(config.JdksFile()),
		Env:            env,
		Switcher:       orch,
		Settings:       s,
		ReloadSettings: settings.Reload,
		SaveSettings:   save,
	}), nil
}
