package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(d *Deps) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "remove <path|version>",
		Aliases: []string{"rm"},
		Short:   "Forget a saved JDK (files on disk are left alone)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("give either a path or version, or --all")
			}

			a, err := d.NewApp()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if all {
				if err := a.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed all saved JDKs")
				return nil
			}

			if err := a.Load(ctx); err != nil {
				return err
			}
			j, err := resolve(a.JDKs(), args[0])
			if err != nil {
				return err
			}
			if err := a.Remove(ctx, j.Path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", j.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "forget every saved JDK")

	return cmd
}
