package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newTrayCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tray",
		Short: "Run in the system tray",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrayCmd(d)
		},
	}

	return cmd
}

func runTrayCmd(d *Deps) error {
	if d.RunTray == nil {
		return errors.New("tray mode is not available in this build")
	}
	a, err := d.NewApp()
	if err != nil {
		return err
	}
	return d.RunTray(a)
}
