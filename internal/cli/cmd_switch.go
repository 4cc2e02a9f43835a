package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pink-tools/pink-otel"
	"github.com/spf13/cobra"

	"github.com/pink-tools/pink-jdk/internal/api"
	"github.com/pink-tools/pink-jdk/internal/jdk"
)

func newSwitchCmd(d *Deps) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "switch <path|version>",
		Short: "Make a JDK the active one on the machine PATH",
		Long: `Make a JDK the active one on the machine PATH.
The argument is a JDK directory (home or bin) or a version prefix of a
saved JDK, e.g. "21" or "1.8". When the tray is running the switch goes
through it; otherwise it runs here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := d.NewApp()
			if err != nil {
				return err
			}
			if err := a.Load(ctx); err != nil {
				return err
			}

			target, err := resolveTarget(a.JDKs(), args[0])
			if err != nil {
				return err
			}

			if !local {
				_, err := d.Send("switch", target)
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", target)
					return nil
				}
				if !errors.Is(err, api.ErrNotRunning) {
					return err
				}
				otel.Info(ctx, "tray not running, switching locally")
			}

			if err := a.Switch(ctx, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), "Open a new terminal to pick up the change.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "switch in this process even if the tray is running")

	return cmd
}

// resolveTarget turns a switch argument into a bin directory. An existing
// directory wins; a JDK home is mapped to its bin directory.
func resolveTarget(jdks []jdk.JDK, arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		dir, err := filepath.Abs(arg)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(filepath.Join(dir, "bin", jdk.ExecutableName())); err == nil {
			return filepath.Join(dir, "bin"), nil
		}
		return dir, nil
	}

	j, err := resolve(jdks, arg)
	if err != nil {
		return "", err
	}
	return j.Path, nil
}

// resolve finds a listed JDK by exact path or unique version prefix.
func resolve(jdks []jdk.JDK, arg string) (jdk.JDK, error) {
	clean := filepath.Clean(arg)
	for _, j := range jdks {
		if j.Path == arg || j.Path == clean {
			return j, nil
		}
	}

	var matches []jdk.JDK
	for _, j := range jdks {
		if j.Version == arg || strings.HasPrefix(j.Version, arg+".") || strings.HasPrefix(j.Version, arg+"_") || strings.HasPrefix(j.Version, arg+"-") {
			matches = append(matches, j)
		}
	}
	switch len(matches) {
	case 0:
		return jdk.JDK{}, fmt.Errorf("no saved JDK matches %q", arg)
	case 1:
		return matches[0], nil
	}

	var paths []string
	for _, m := range matches {
		paths = append(paths, m.Path)
	}
	return jdk.JDK{}, fmt.Errorf("%q matches several JDKs:\n  %s", arg, strings.Join(paths, "\n  "))
}
