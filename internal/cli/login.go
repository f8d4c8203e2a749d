package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// navigationGrace is how long a command waits past the redirect delay for the
// navigation signal before giving up on it.
const navigationGrace = time.Second

func newLoginCommand(g *globals) *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Exchange credentials for a session and store it for later runs.

Examples:
  visafrontend login --email a@b.com --password secret
  echo secret | visafrontend login --email a@b.com --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				pw, err := readLine(g)
				if err != nil {
					return err
				}
				password = pw
			}

			routes := make(chan domain.Route, 1)
			a, err := g.open(cmd.Context(), func(r domain.Route) {
				select {
				case routes <- r:
				default:
				}
			})
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			ctx := cmd.Context()
			user, err := a.Sessions.Login(ctx, email, password)
			if err != nil {
				return err
			}

			g.printer.Success("Welcome back, %s!", user.DisplayName())
			route := a.Sessions.ScheduleLanding(ctx, *user)

			select {
			case r := <-routes:
				g.printer.Navigate(r)
			case <-time.After(a.Sessions.LoginDelay() + navigationGrace):
				g.printer.Navigate(route)
			case <-ctx.Done():
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	return cmd
}

// readLine reads one line from the command's input without the line ending.
func readLine(g *globals) (string, error) {
	line, err := bufio.NewReader(g.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
