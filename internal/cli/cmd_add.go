package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAddCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <dir>",
		Short: "Find JDKs under a directory and save them",
		Long: `Find JDKs under a directory and save them.
The directory may be a JDK home, its bin directory, or a folder holding
several JDKs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			a, err := d.NewApp()
			if err != nil {
				return err
			}

			n, err := a.AddFromDir(context.Background(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d JDK(s) from %s\n", n, dir)
			return nil
		},
	}

	return cmd
}
