// ABOUTME: Auth subcommands
// ABOUTME: Runs the Google OAuth flow and saves a token for the Sheets API
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/harperreed/stoneledger/sheets"
)

// callbackAddr must match the redirect URL of the OAuth client.
const callbackAddr = "localhost:8085"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize read-only access to Google Sheets",
	Long: `Opens a browser for Google OAuth and saves the token to the configured
token file. Requires google.client_id and google.client_secret
(GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		creds := cfg.SheetsOptions().Credentials
		if creds.ClientID == "" || creds.ClientSecret == "" {
			return fmt.Errorf("google.client_id and google.client_secret are required for login")
		}
		if creds.TokenFile == "" {
			creds.TokenFile = sheets.DefaultTokenPath()
		}

		token, err := runOAuthFlow(ctx, creds.OAuthConfig())
		if err != nil {
			return err
		}
		if err := sheets.SaveToken(creds.TokenFile, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "\n✓ Authenticated successfully\n")
		_, _ = fmt.Fprintf(out, "✓ Token saved to %s\n\n", creds.TokenFile)
		_, _ = fmt.Fprintln(out, "Run 'stoneledger fetch' to read your sheets.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	rootCmd.AddCommand(authCmd)
}

func runOAuthFlow(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	tokenCh := make(chan *oauth2.Token, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "invalid state", http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			http.Error(w, "token exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		tokenCh <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() { _ = server.Shutdown(context.WithoutCancel(ctx)) }()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	logger.Info("opening browser for Google OAuth")
	fmt.Printf("\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)
	_ = openBrowser(authURL)

	select {
	case token := <-tokenCh:
		return token, nil
	case err := <-errCh:
		return nil, fmt.Errorf("OAuth flow failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
