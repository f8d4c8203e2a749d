package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/service"
)

func newRegisterCommand(g *globals) *cobra.Command {
	var (
		form          domain.RegistrationForm
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account with the remote API. No session is stored; sign in
afterwards with "visafrontend login".

Examples:
  visafrontend register --name "Ada Lovelace" --email ada@b.com --mobile 91987654321 --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				pw, err := readLine(g)
				if err != nil {
					return err
				}
				form.Password = pw
			}
			if !cmd.Flags().Changed("confirm-password") {
				form.ConfirmPassword = form.Password
			}

			req, err := service.ValidateRegistration(form)
			if err != nil {
				return err
			}

			a, err := g.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			conf, err := a.Sessions.Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			g.printer.Success("Registration successful!")
			if conf.Message != "" {
				g.printer.Info("%s", conf.Message)
			}
			g.printer.Info("Your account has been created. Please login to continue.")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "full name; the first word becomes the first name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&form.Mobile, "mobile", "", "mobile number with country code")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (default: --password)")
	cmd.Flags().StringVar(&form.Country, "country", "", "country code (default \"other\")")
	cmd.Flags().BoolVar(&form.AgreeTerms, "agree-terms", false, "accept the terms of service")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	return cmd
}
