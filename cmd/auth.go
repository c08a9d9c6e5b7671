package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/cadence/internal/google"
	"github.com/teemow/cadence/internal/logging"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize cadence to access your Google Calendar",
		Long: `Run the OAuth flow for the configured account and store the token.

Open the printed URL, grant access and paste the code from the address bar
of the page you are redirected to. The OAuth client comes from --credentials
(a credentials.json from the Google Cloud console) or from GOOGLE_CLIENT_ID
and GOOGLE_CLIENT_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				return runAuth(ctx, cmd, a)
			})
		},
	}
	return cmd
}

func runAuth(ctx context.Context, cmd *cobra.Command, a *app) error {
	conf, err := a.oauthConfig()
	if err != nil {
		return err
	}
	store, err := a.tokenStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if store.Has(a.settings.Account) {
		fmt.Fprintf(out, "A token for account %q already exists and will be replaced.\n", a.settings.Account)
	}
	fmt.Fprintf(out, "Visit this URL to authorize account %q:\n\n%s\n\n", a.settings.Account, google.GetAuthURL(conf))
	fmt.Fprint(out, "Enter the authorization code: ")

	code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && code == "" {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("authorization code is empty")
	}

	if err := google.ExchangeAndSave(ctx, conf, store, a.settings.Account, code); err != nil {
		return err
	}
	if token, err := store.Load(a.settings.Account); err == nil {
		a.logger.Debug("token stored",
			logging.Account(a.settings.Account),
			"access_token", logging.SanitizeToken(token.AccessToken),
			"expiry", token.Expiry,
		)
	}
	fmt.Fprintf(out, "Token saved to %s\n", store.Path(a.settings.Account))
	return nil
}
