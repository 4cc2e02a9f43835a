// Package app holds the JDK list shown by the CLI and the tray, and the
// actions that change it.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/catalog"
	"github.com/pink-tools/pink-jdk/internal/jdk"
	"github.com/pink-tools/pink-jdk/internal/settings"
)

var ErrTargetMissing = errors.New("jdk directory does not exist")

type Environment interface {
	Refresh() error
	JavaBinDir() (string, bool)
	MachineContains(dir string) (bool, error)
}

type Switcher interface {
	Switch(ctx context.Context, target string) error
}

type Options struct {
	Catalog  *catalog.Catalog
	Env      Environment
	Switcher Switcher
	// Probe describes a java executable; defaults to jdk.FromExecutable.
	Probe    func(ctx context.Context, exe string) (jdk.JDK, error)
	Settings *settings.Settings
	// ReloadSettings and SaveSettings back Reload and AddScanDirs.
	ReloadSettings func() (*settings.Settings, error)
	SaveSettings   func(*settings.Settings) error
}

type App struct {
	catalog  *catalog.Catalog
	env      Environment
	switcher Switcher
	finder   jdk.Finder

	reloadSettings func() (*settings.Settings, error)
	saveSettings   func(*settings.Settings) error

	mu       sync.Mutex
	settings *settings.Settings
	jdks     []jdk.JDK
	onChange []func([]jdk.JDK)
}

func New(opts Options) *App {
	probe := opts.Probe
	if probe == nil {
		probe = jdk.FromExecutable
	}
	s := opts.Settings
	if s == nil {
		s = settings.Default()
	}
	return &App{
		catalog:        opts.Catalog,
		env:            opts.Env,
		switcher:       opts.Switcher,
		finder:         jdk.Finder{Probe: probe},
		reloadSettings: opts.ReloadSettings,
		saveSettings:   opts.SaveSettings,
		settings:       s,
	}
}

func (a *App) Settings() *settings.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// OnChange registers fn to receive the list after every Load.
func (a *App) OnChange(fn func([]jdk.JDK)) {
	a.mu.Lock()
	a.onChange = append(a.onChange, fn)
	a.mu.Unlock()
}

// JDKs returns a copy of the list from the last Load.
func (a *App) JDKs() []jdk.JDK {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]jdk.JDK(nil), a.jdks...)
}

func (a *App) Current() (jdk.JDK, bool) {
	for _, j := range a.JDKs() {
		if j.Current {
			return j, true
		}
	}
	return jdk.JDK{}, false
}

// Load rebuilds the list from the catalog and the machine PATH. The JDK
// that PATH resolves java to is marked current; when it was never saved it
// is probed and shown anyway, without being saved.
func (a *App) Load(ctx context.Context) error {
	if err := a.env.Refresh(); err != nil {
		otel.Warn(ctx, "failed to refresh PATH before lookup", otel.Attr{K: "error", V: err.Error()})
	}

	saved, err := a.catalog.All()
	if err != nil {
		return err
	}

	for i := range saved {
		saved[i].Current = false
	}

	if bin, ok := a.env.JavaBinDir(); ok {
		found := false
		for i := range saved {
			if samePath(saved[i].Path, bin) {
				saved[i].Current = true
				found = true
				break
			}
		}
		if !found {
			current, err := a.finder.Probe(ctx, filepath.Join(bin, jdk.ExecutableName()))
			if err != nil {
				otel.Warn(ctx, "failed to probe current java", otel.Attr{K: "path", V: bin}, otel.Attr{K: "error", V: err.Error()})
			} else {
				current.Current = true
				saved = append(saved, current)
			}
		}
	}

	for i := range saved {
		saved[i].Valid = dirExists(saved[i].Path)
	}

	a.mu.Lock()
	a.jdks = saved
	listeners := append(([]func([]jdk.JDK))(nil), a.onChange...)
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(append([]jdk.JDK(nil), saved...))
	}
	return nil
}

// Reload re-reads settings, then the list. A broken settings file keeps the
// previous settings in place.
func (a *App) Reload(ctx context.Context) error {
	if a.reloadSettings != nil {
		s, err := a.reloadSettings()
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.settings = s
		a.mu.Unlock()
		otel.Info(ctx, "settings reloaded", otel.Attr{K: "scan_dirs", V: len(s.ScanDirs)})
	}
	return a.Load(ctx)
}

// AddScanDirs appends dirs to the saved scan directories, skipping ones
// already listed.
func (a *App) AddScanDirs(dirs []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := *a.settings
	next.ScanDirs = append([]string(nil), a.settings.ScanDirs...)
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		known := false
		for _, d := range next.ScanDirs {
			if samePath(d, dir) {
				known = true
				break
			}
		}
		if !known {
			next.ScanDirs = append(next.ScanDirs, dir)
		}
	}

	if a.saveSettings != nil {
		if err := a.saveSettings(&next); err != nil {
			return err
		}
	}
	a.settings = &next
	return nil
}

// AddFromDir saves every JDK found under dir and returns how many.
func (a *App) AddFromDir(ctx context.Context, dir string) (int, error) {
	found, err := a.finder.FindInDir(ctx, dir)
	if err != nil {
		return 0, err
	}
	if len(found) > 0 {
		if err := a.catalog.AddAll(found); err != nil {
			return 0, err
		}
	}
	otel.Info(ctx, "jdks added", otel.Attr{K: "dir", V: dir}, otel.Attr{K: "count", V: len(found)})
	return len(found), a.Load(ctx)
}

// Rescan runs AddFromDir over the configured scan directories that exist.
func (a *App) Rescan(ctx context.Context) (int, error) {
	var all []jdk.JDK
	for _, dir := range a.Settings().ExistingScanDirs() {
		found, err := a.finder.FindInDir(ctx, dir)
		if err != nil {
			otel.Warn(ctx, "scan failed", otel.Attr{K: "dir", V: dir}, otel.Attr{K: "error", V: err.Error()})
			continue
		}
		all = append(all, found...)
	}
	if len(all) > 0 {
		if err := a.catalog.AddAll(all); err != nil {
			return 0, err
		}
	}
	return len(all), a.Load(ctx)
}

func (a *App) Remove(ctx context.Context, path string) error {
	if err := a.catalog.Remove(path); err != nil {
		return err
	}
	return a.Load(ctx)
}

// Clear forgets every saved JDK.
func (a *App) Clear(ctx context.Context) error {
	if err := a.catalog.Clear(); err != nil {
		return err
	}
	return a.Load(ctx)
}

// Switch makes path the active JDK bin directory.
func (a *App) Switch(ctx context.Context, path string) error {
	if !dirExists(path) {
		return fmt.Errorf("%w: %s", ErrTargetMissing, path)
	}
	if a.alreadyCurrent(path) {
		otel.Info(ctx, "already current", otel.Attr{K: "path", V: path})
		return a.Load(ctx)
	}
	if err := a.switcher.Switch(ctx, path); err != nil {
		return err
	}
	return a.Load(ctx)
}

// alreadyCurrent holds when java already resolves to path through the
// machine value. A JDK active only through the user PATH still gets added.
func (a *App) alreadyCurrent(path string) bool {
	current, ok := a.env.JavaBinDir()
	if !ok || !samePath(current, path) {
		return false
	}
	inMachine, err := a.env.MachineContains(path)
	return err == nil && inMachine
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
