// Package cli provides the cobra command tree for pink-jdk.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand
// starts tray mode.
func NewRootCmd(d *Deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pink-jdk",
		Short: "Switch the active JDK on this machine",
		Long: `pink-jdk - switch the active JDK on this machine

pink-jdk keeps a list of installed JDKs and makes one of them current by
rewriting the machine-wide PATH. The PATH write runs in a small elevated
helper (env-path-updater), so switching asks for administrator rights.`,
		Version:       d.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrayCmd(d)
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("pink-jdk v{{.Version}}\n")

	rootCmd.AddCommand(
		newListCmd(d),
		newAddCmd(d),
		newRemoveCmd(d),
		newScanCmd(d),
		newSwitchCmd(d),
		newCurrentCmd(d),
		newPathCmd(d),
		newTrayCmd(d),
		newVersionCmd(d),
	)

	return rootCmd
}

// Execute runs the root command with d against the given writers.
func Execute(d *Deps, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd(d)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
