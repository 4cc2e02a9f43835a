package tray

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/getlantern/systray"
	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/jdk"
)

// systray cannot remove items, so JDK entries come from a fixed pool that
// is shown and hidden as the list changes.
const maxJDKItems = 24

// App is what the menu drives.
type App interface {
	JDKs() []jdk.JDK
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	Rescan(ctx context.Context) (int, error)
	Switch(ctx context.Context, path string) error
	OnChange(fn func([]jdk.JDK))
}

type jdkItem struct {
	item *systray.MenuItem
	mu   sync.Mutex
	path string
}

type Tray struct {
	app    App
	onExit func()

	items   []*jdkItem
	mStatus *systray.MenuItem
	mMore   *systray.MenuItem
}

// New builds a tray for a. onExit runs once the menu loop ends.
func New(a App, onExit func()) *Tray {
	return &Tray{app: a, onExit: onExit}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.exit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("")
	systray.SetTooltip("Pink JDK")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		systray.Quit()
	}()

	t.buildMenu()
	t.app.OnChange(t.updateMenus)

	go func() {
		if err := t.app.Load(context.Background()); err != nil {
			otel.Error(context.Background(), "failed to load jdks", otel.Attr{K: "error", V: err.Error()})
			t.setStatus(fmt.Sprintf("Error: %s", truncate(err.Error(), 50)))
		}
	}()
}

func (t *Tray) exit() {
	otel.Info(context.Background(), "shutting down")
	if t.onExit != nil {
		t.onExit()
	}
	otel.Info(context.Background(), "stopped")
}

func (t *Tray) buildMenu() {
	for i := 0; i < maxJDKItems; i++ {
		ji := &jdkItem{item: systray.AddMenuItem("", "")}
		ji.item.Hide()
		t.items = append(t.items, ji)
		go t.watch(ji)
	}
	t.mMore = systray.AddMenuItem("", "")
	t.mMore.Disable()
	t.mMore.Hide()

	systray.AddSeparator()

	t.mStatus = systray.AddMenuItem("Status: -", "")
	t.mStatus.Disable()

	systray.AddSeparator()

	mRescan := systray.AddMenuItem("Rescan", "Search the configured directories for JDKs")
	mReload := systray.AddMenuItem("Reload", "Re-read settings, PATH and the saved JDK list")

	go func() {
		for range mRescan.ClickedCh {
			go t.rescan()
		}
	}()

	go func() {
		for range mReload.ClickedCh {
			go func() {
				if err := t.app.Reload(context.Background()); err != nil {
					otel.Error(context.Background(), "reload failed", otel.Attr{K: "error", V: err.Error()})
					t.setStatus(fmt.Sprintf("Error: %s", truncate(err.Error(), 50)))
				}
			}()
		}
	}()

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "")
	go func() {
		<-mQuit.ClickedCh
		systray.Quit()
	}()
}

func (t *Tray) watch(ji *jdkItem) {
	for range ji.item.ClickedCh {
		ji.mu.Lock()
		path := ji.path
		ji.mu.Unlock()
		if path == "" {
			continue
		}
		go t.switchTo(path)
	}
}

func (t *Tray) switchTo(path string) {
	ctx := context.Background()
	otel.Info(ctx, "switching", otel.Attr{K: "path", V: path})
	t.setStatus("Switching...")

	if err := t.app.Switch(ctx, path); err != nil {
		otel.Error(ctx, "switch failed", otel.Attr{K: "path", V: path}, otel.Attr{K: "error", V: err.Error()})
		t.setStatus(fmt.Sprintf("Error: %s", truncate(err.Error(), 50)))
		return
	}
	t.setStatus(fmt.Sprintf("Switched to %s", truncate(path, 40)))
}

func (t *Tray) rescan() {
	ctx := context.Background()
	t.setStatus("Scanning...")
	n, err := t.app.Rescan(ctx)
	if err != nil {
		otel.Error(ctx, "rescan failed", otel.Attr{K: "error", V: err.Error()})
		t.setStatus(fmt.Sprintf("Error: %s", truncate(err.Error(), 50)))
		return
	}
	t.setStatus(fmt.Sprintf("Found %d JDKs", n))
}

func (t *Tray) updateMenus(jdks []jdk.JDK) {
	jdk.SortByVersion(jdks)

	for i, ji := range t.items {
		if i >= len(jdks) {
			ji.mu.Lock()
			ji.path = ""
			ji.mu.Unlock()
			ji.item.Hide()
			continue
		}

		j := jdks[i]
		ji.mu.Lock()
		ji.path = j.Path
		ji.mu.Unlock()

		ji.item.SetTitle(Label(j))
		ji.item.SetTooltip(j.Path)
		if j.Valid && !j.Current {
			ji.item.Enable()
		} else {
			ji.item.Disable()
		}
		ji.item.Show()
	}

	if extra := len(jdks) - len(t.items); extra > 0 {
		t.mMore.SetTitle(fmt.Sprintf("%d more (see pink-jdk list)", extra))
		t.mMore.Show()
	} else {
		t.mMore.Hide()
	}

	if len(jdks) == 0 {
		t.setStatus("No JDKs, use Rescan")
	}
}

func (t *Tray) setStatus(msg string) {
	if t.mStatus != nil {
		t.mStatus.SetTitle(fmt.Sprintf("Status: %s", msg))
	}
}

// Label is a JDK's menu title: ● current, ✕ missing from disk, ○ otherwise.
func Label(j jdk.JDK) string {
	mark := "○"
	switch {
	case !j.Valid:
		mark = "✕"
	case j.Current:
		mark = "●"
	}
	name := j.Name
	if name == "" {
		name = "Java"
	}
	return fmt.Sprintf("%s %s %s (%s)", mark, name, j.Version, j.Arch)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
