package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

func newPathCmd(d *Deps) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the machine PATH entries",
		Long: `Print the machine PATH entries, one per line.
Entries whose directory is missing are marked ✕, repeated entries =.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := d.MachinePath.Read()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(out, value)
				return nil
			}

			st := newStyles(out)
			seen := map[string]bool{}
			for _, entry := range pathlist.Parse(value).Entries() {
				switch {
				case seen[entry]:
					fmt.Fprintln(out, st.dim.Render("= "+entry))
				case !exists(entry):
					fmt.Fprintln(out, st.invalid.Render("✕ "+entry))
				default:
					fmt.Fprintln(out, "  "+entry)
				}
				seen[entry] = true
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored value unchanged")

	return cmd
}

// exists expands %VAR% and $VAR references before checking, since stored
// entries such as %SystemRoot%\system32 are unexpanded.
func exists(entry string) bool {
	_, err := os.Stat(expandEntry(entry))
	return err == nil
}
