package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/pink-tools/pink-core"
)

const (
	AppName        = "pink-jdk"
	UpdaterName    = "env-path-updater"
	ResultFileName = "env-path-updater.log"

	DefaultPort         = 7461
	DefaultPollInterval = 50 * time.Millisecond
	DefaultPollTimeout  = 2 * time.Second
)

func Port() int {
	if p := os.Getenv("PINK_JDK_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			return port
		}
	}
	return DefaultPort
}

// AppDir is where the JDK list, settings and lock file live.
func AppDir() string {
	if dir := os.Getenv("PINK_JDK_HOME"); dir != "" {
		return dir
	}
	return core.ServiceDir(AppName)
}

func JdksFile() string {
	return filepath.Join(AppDir(), "data", "jdks.json")
}

func SettingsFile() string {
	return filepath.Join(AppDir(), "settings.yaml")
}

func SwitchLockFile() string {
	return filepath.Join(AppDir(), "switch.lock")
}

// MachinePathFile backs the managed PATH list on platforms without a
// machine registry.
func MachinePathFile() string {
	if p := os.Getenv("PINK_JDK_PATH_FILE"); p != "" {
		return p
	}
	return filepath.Join(AppDir(), "machine-path")
}

// UpdaterBinary returns the elevated helper, installed next to the running
// executable.
func UpdaterBinary() string {
	if p := os.Getenv("PINK_JDK_UPDATER"); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return BinaryName(UpdaterName)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), BinaryName(UpdaterName))
}

// ResultFile is the helper's result mailbox. It sits next to the helper
// binary rather than under a user profile: an elevated process may run as a
// different account, but both sides agree on where the helper lives.
func ResultFile(updater string) string {
	return filepath.Join(filepath.Dir(updater), ResultFileName)
}

func PollInterval(fallback time.Duration) time.Duration {
	return durationEnv("PINK_JDK_POLL_INTERVAL", fallback, DefaultPollInterval)
}

func PollTimeout(fallback time.Duration) time.Duration {
	return durationEnv("PINK_JDK_POLL_TIMEOUT", fallback, DefaultPollTimeout)
}

func durationEnv(name string, fallback, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	if fallback > 0 {
		return fallback
	}
	return def
}

func BinaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func EnsureDirs() error {
	dirs := []string{
		AppDir(),
		filepath.Dir(JdksFile()),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
