package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newLogoutCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			g.printer.Success("Signed out")
			return nil
		},
	}
}
