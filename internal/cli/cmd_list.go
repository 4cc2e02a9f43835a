package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pink-tools/pink-jdk/internal/jdk"
)

func newListCmd(d *Deps) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved JDKs, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := d.NewApp()
			if err != nil {
				return err
			}
			if err := a.Load(context.Background()); err != nil {
				return err
			}

			jdks := a.JDKs()
			jdk.SortByVersion(jdks)

			if jsonOutput {
				if jdks == nil {
					jdks = []jdk.JDK{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(jdks)
			}
			printJDKs(cmd.OutOrStdout(), jdks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func printJDKs(w io.Writer, jdks []jdk.JDK) {
	st := newStyles(w)
	if len(jdks) == 0 {
		fmt.Fprintln(w, st.dim.Render("No JDKs saved. Add one with: pink-jdk add <dir>"))
		return
	}

	var nameW, verW int
	for _, j := range jdks {
		nameW = max(nameW, len(j.Name))
		verW = max(verW, len(j.Version))
	}

	for _, j := range jdks {
		mark, style := "○", st.dim
		switch {
		case !j.Valid:
			mark, style = "✕", st.invalid
		case j.Current:
			mark, style = "●", st.current
		}
		line := fmt.Sprintf("%s %s  %s  %s  %s", mark, pad(j.Name, nameW), pad(j.Version, verW), pad(j.Arch, 6), j.Path)
		if j.Current || !j.Valid {
			line = style.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
