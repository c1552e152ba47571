package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tokenExpiryMargin renews tokens slightly early so an in-flight request
// never carries a token that expires mid-request.
const tokenExpiryMargin = 30 * time.Second

// token returns a valid access token, requesting a new one from the token
// endpoint when the cached token is missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.accessToken, nil
	}

	c.logDebugf("spotify: requesting access token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("received empty access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	return c.accessToken, nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

// parseAPIError turns an error response body into a *Error, falling back to
// the HTTP status when the body isn't the documented envelope.
func parseAPIError(status int, body []byte) error {
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &Error{Status: envelope.Error.Status, Message: envelope.Error.Message}
	}

	// The token endpoint uses {"error": "...", "error_description": "..."}.
	var oauthErr struct {
		Err  string `json:"error"`
		Desc string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Err != "" {
		msg := oauthErr.Err
		if oauthErr.Desc != "" {
			msg = fmt.Sprintf("%s: %s", oauthErr.Err, oauthErr.Desc)
		}
		return &Error{Status: status, Message: msg}
	}

	return &Error{Status: status, Message: http.StatusText(status)}
}
