package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newScanCmd(d *Deps) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Search the configured scan_dirs for JDKs and save them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := d.NewApp()
			if err != nil {
				return err
			}

			if len(dirs) > 0 {
				abs := make([]string, 0, len(dirs))
				for _, dir := range dirs {
					p, err := filepath.Abs(dir)
					if err != nil {
						return err
					}
					abs = append(abs, p)
				}
				if err := a.AddScanDirs(abs); err != nil {
					return fmt.Errorf("failed to save settings: %w", err)
				}
			}

			n, err := a.Rescan(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d JDK(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&dirs, "dir", nil, "add a directory to scan_dirs before scanning (repeatable)")

	return cmd
}
