package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCurrentCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the JDK the machine PATH resolves java to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := d.NewApp()
			if err != nil {
				return err
			}
			if err := a.Load(context.Background()); err != nil {
				return err
			}

			j, ok := a.Current()
			if !ok {
				return errors.New("no java on PATH")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n%s\n", j.Name, j.Version, j.Arch, j.Path)
			return nil
		},
	}

	return cmd
}
