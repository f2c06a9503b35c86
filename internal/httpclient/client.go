package httpclient

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewOAuth2Client creates an HTTP client that attaches a static bearer token
// to every request. Used for Google Drive downloads where the caller holds a
// short-lived access token rather than a refresh flow.
func NewOAuth2Client(ctx context.Context, accessToken string, timeout time.Duration) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	ctx = context.WithValue(ctx, oauth2.HTTPClient, NewDefaultHTTPClient(timeout))
	client := oauth2.NewClient(ctx, source)
	client.Timeout = timeout
	return client
}
