// ABOUTME: Google credentials for the Sheets API
// ABOUTME: Service-account JSON, credential files, or a saved OAuth token at an XDG path
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ReadonlyScope is the only scope StoneLedger requests.
const ReadonlyScope = sheets.SpreadsheetsReadonlyScope

// Credentials lists the ways to authenticate, tried in field order.
type Credentials struct {
	// JSON holds service account (or authorized user) credentials inline,
	// usually from GOOGLE_CREDENTIALS.
	JSON string
	// File is a path to the same JSON.
	File string
	// TokenFile is an OAuth token saved by `stoneledger auth login`.
	TokenFile string

	ClientID     string
	ClientSecret string
}

// ClientOptions resolves the credentials into API client options.
func (c Credentials) ClientOptions(ctx context.Context) ([]option.ClientOption, error) {
	switch {
	case c.JSON != "":
		creds, err := google.CredentialsFromJSON(ctx, []byte(c.JSON), ReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse google credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil

	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, ReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil

	case c.TokenFile != "":
		token, err := LoadToken(c.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("no usable token. Run 'stoneledger auth login' first: %w", err)
		}
		client := c.OAuthConfig().Client(ctx, token)
		return []option.ClientOption{option.WithHTTPClient(client)}, nil
	}

	return nil, fmt.Errorf("google credentials not configured. Set GOOGLE_CREDENTIALS or run 'stoneledger auth login'")
}

// OAuthConfig is the installed-app OAuth configuration for the login flow.
func (c Credentials) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  "http://localhost:8085/oauth/callback",
		Scopes:       []string{ReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// DefaultTokenPath returns the XDG data path for the saved OAuth token.
func DefaultTokenPath() string {
	return filepath.Join(xdg.DataHome, "stoneledger", "google-token.json")
}

// SaveToken writes the token with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}
