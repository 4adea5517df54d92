package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GrantTypeJWTBearer is the OAuth2 grant used to trade an assertion for a token.
const GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// TokenExchangeError reports a failed token request. StatusCode is zero when
// the request never produced a response.
type TokenExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed (%d): %v: %s", e.StatusCode, e.Err, e.Body)
	}
	return fmt.Sprintf("token exchange failed (%d): %s", e.StatusCode, e.Body)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// Exchanger trades signed assertions for bearer tokens at a token endpoint.
type Exchanger struct {
	TokenURL string
	HTTP     *http.Client
}

// NewExchanger creates an exchanger. A nil client uses http.DefaultClient.
func NewExchanger(tokenURL string, client *http.Client) *Exchanger {
	if client == nil {
		client = http.DefaultClient
	}
	return &Exchanger{TokenURL: tokenURL, HTTP: client}
}

// Exchange performs one form-encoded grant request and returns the access token.
func (e *Exchanger) Exchange(ctx context.Context, assertion string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", GrantTypeJWTBearer)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TokenExchangeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.HTTP.Do(req)
	if err != nil {
		return "", &TokenExchangeError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.AccessToken == "" {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("access_token missing")}
	}
	return out.AccessToken, nil
}
