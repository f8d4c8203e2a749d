package cli

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// statusReport is the --json form of the status command.
type statusReport struct {
	Profile       string       `json:"profile"`
	Backend       string       `json:"backend"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Destination   domain.Route `json:"destination,omitempty"`
}

func newStatusCommand(g *globals) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Long: `Display the session restored from the configured backend.

Examples:
  visafrontend status
  visafrontend status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			ctx := cmd.Context()
			st := a.Sessions.State()
			report := statusReport{
				Profile:       a.Config.Session.Profile,
				Backend:       a.Store.Backend().Name(),
				Authenticated: a.Sessions.Authenticated(ctx),
				User:          st.User,
			}
			if st.User != nil {
				report.Destination = a.Sessions.LandingRoute(ctx, *st.User)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return g.printer.Table(statusRows(report))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func statusRows(r statusReport) [][]string {
	rows := [][]string{
		{"Profile", r.Profile},
		{"Backend", r.Backend},
		{"Signed in", strconv.FormatBool(r.Authenticated)},
	}
	if r.User != nil {
		rows = append(rows,
			[]string{"Name", r.User.DisplayName()},
			[]string{"Email", r.User.Email},
			[]string{"Role", string(r.User.UserType)},
			[]string{"Dashboard", string(r.Destination)},
		)
	}
	return rows
}
