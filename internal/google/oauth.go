package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// RedirectURL is the loopback redirect registered for desktop OAuth clients.
// The browser lands on an unreachable page whose URL carries the code.
const RedirectURL = "http://localhost"

// ErrNoCredentials is returned when no OAuth client ID or secret is configured.
var ErrNoCredentials = errors.New("no Google OAuth client configured; set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET or pass --credentials")

// NewOAuthConfig returns the OAuth2 configuration for a desktop client.
func NewOAuthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrNoCredentials
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  RedirectURL,
		Scopes:       DefaultOAuthScopes,
	}, nil
}

// ConfigFromFile loads an OAuth client from a credentials.json downloaded
// from the Google Cloud console.
func ConfigFromFile(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	conf, err := google.ConfigFromJSON(data, DefaultOAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return conf, nil
}

// GetAuthURL returns the URL the user visits to grant calendar access.
func GetAuthURL(conf *oauth2.Config) string {
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeAndSave exchanges an authorization code for a token and stores it
// for account.
func ExchangeAndSave(ctx context.Context, conf *oauth2.Config, store *TokenStore, account, authCode string) error {
	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return store.Save(account, token)
}

// GetTokenSource returns a token source for the stored token of account.
// Refreshed tokens are written back to the store.
func GetTokenSource(ctx context.Context, conf *oauth2.Config, store *TokenStore, account string) (oauth2.TokenSource, error) {
	token, err := store.Load(account)
	if err != nil {
		return nil, err
	}
	base := conf.TokenSource(ctx, token)
	return oauth2.ReuseTokenSource(token, &savingTokenSource{
		base:    base,
		store:   store,
		account: account,
		last:    token.AccessToken,
	}), nil
}

// GetHTTPClient returns an HTTP client authenticated as account.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func GetHTTPClient(ctx context.Context, conf *oauth2.Config, store *TokenStore, account string) (*http.Client, error) {
	ts, err := GetTokenSource(ctx, conf, store, account)
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   &http.Transport{ForceAttemptHTTP2: false},
		},
	}, nil
}

type savingTokenSource struct {
	base    oauth2.TokenSource
	store   *TokenStore
	account string
	last    string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token for account %s: %w", s.account, err)
	}
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.store.Save(s.account, token); err != nil {
			return nil, err
		}
	}
	return token, nil
}
