package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print pink-jdk version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pink-jdk v%s\n", d.Version)
		},
	}

	return cmd
}
