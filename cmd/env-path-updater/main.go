// Command env-path-updater edits the machine PATH. It must be started
// elevated; pink-jdk launches it through the platform's consent prompt and
// reads the outcome from env-path-updater.log next to this executable.
package main

import (
	"os"

	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/envstore"
	"github.com/pink-tools/pink-jdk/internal/result"
	"github.com/pink-tools/pink-jdk/internal/updater"
	"github.com/pink-tools/pink-otel"
)

var version = "dev"

func main() {
	otel.Init(config.UpdaterName, version)

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	r := &updater.Runner{
		Store:   envstore.Machine(),
		Mailbox: result.NewMailbox(config.ResultFile(exe)),
		Notify:  envstore.NotifyChanged,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	os.Exit(r.Run(os.Args[1:]))
}
