package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pink-tools/pink-otel"
	"gopkg.in/yaml.v3"

	"github.com/pink-tools/pink-jdk/internal/config"
)

type Settings struct {
	// ScanDirs are searched by rescan for JDK installs.
	ScanDirs     []string      `yaml:"scan_dirs,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	PollTimeout  time.Duration `yaml:"poll_timeout,omitempty"`
}

var (
	cacheMu sync.RWMutex
	cached  *Settings
)

// Load returns the user's settings.yaml, falling back to a settings.yaml
// shipped next to the executable, then to defaults. The result is cached.
func Load() (*Settings, error) {
	cacheMu.RLock()
	if cached != nil {
		defer cacheMu.RUnlock()
		return cached, nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	defer cacheMu.Unlock()
	return loadLocked()
}

// Reload drops the cache and reads the files again.
func Reload() (*Settings, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
	return loadLocked()
}

func loadLocked() (*Settings, error) {
	if cached != nil {
		return cached, nil
	}

	s, err := LoadFile(config.SettingsFile())
	if err != nil {
		return nil, err
	}
	if s == nil {
		if exe, err := os.Executable(); err == nil {
			bundled := filepath.Join(filepath.Dir(exe), "settings.yaml")
			if s, err = LoadFile(bundled); err != nil {
				otel.Warn(context.Background(), "ignoring bundled settings", otel.Attr{K: "error", V: err.Error()})
				s = nil
			}
		}
	}
	if s == nil {
		s = Default()
	}

	cached = s
	return cached, nil
}

// LoadFile parses path. A missing file yields nil and no error.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path and replaces the cached settings.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write settings: %w", err)
	}

	cacheMu.Lock()
	cached = s
	cacheMu.Unlock()
	return nil
}

func Default() *Settings {
	return &Settings{ScanDirs: defaultScanDirs()}
}

func defaultScanDirs() []string {
	switch runtime.GOOS {
	case "windows":
		var dirs []string
		for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
			if root := os.Getenv(env); root != "" {
				dirs = append(dirs,
					filepath.Join(root, "Java"),
					filepath.Join(root, "Eclipse Adoptium"),
					filepath.Join(root, "Microsoft"),
					filepath.Join(root, "Zulu"),
				)
			}
		}
		return dirs
	case "darwin":
		return []string{"/Library/Java/JavaVirtualMachines"}
	default:
		return []string{"/usr/lib/jvm"}
	}
}

// ExistingScanDirs returns the configured directories that exist.
func (s *Settings) ExistingScanDirs() []string {
	var dirs []string
	for _, d := range s.ScanDirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
