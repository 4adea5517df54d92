// Package sheetstest fakes the Google token and Sheets append endpoints.
package sheetstest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Append is one request received by the fake append endpoint.
type Append struct {
	Path          string
	Query         url.Values
	Authorization string
	Body          map[string]any
}

// Google serves /token and /v4/spreadsheets/... from one test server.
type Google struct {
	Server *httptest.Server

	// Token endpoint behaviour.
	Token       string
	TokenStatus int
	TokenBody   string

	// Append endpoint behaviour.
	AppendStatus int
	AppendBody   string

	mu          sync.Mutex
	tokenCalls  int
	assertions  []string
	appendCalls []Append
}

// New starts a fake that grants "tok123" and accepts appends.
func New(t testing.TB) *Google {
	t.Helper()
	g := &Google{
		Token:        "tok123",
		TokenStatus:  http.StatusOK,
		AppendStatus: http.StatusOK,
		AppendBody:   `{"spreadsheetId":"sheet","updates":{"updatedRange":"Registro!A2:E2","updatedRows":1}}`,
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Server.Close)
	return g
}

// TokenURL is the fake token endpoint.
func (g *Google) TokenURL() string { return g.Server.URL + "/token" }

// BaseURL is the fake Sheets API root.
func (g *Google) BaseURL() string { return g.Server.URL }

// TokenCalls returns the number of token requests received.
func (g *Google) TokenCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tokenCalls
}

// Assertions returns the assertions posted to the token endpoint.
func (g *Google) Assertions() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.assertions...)
}

// Appends returns the append requests received.
func (g *Google) Appends() []Append {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Append(nil), g.appendCalls...)
}

func (g *Google) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/token":
		g.serveToken(w, r)
	case strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/"):
		g.serveAppend(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (g *Google) serveToken(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	g.mu.Lock()
	g.tokenCalls++
	g.assertions = append(g.assertions, r.PostForm.Get("assertion"))
	status, body, token := g.TokenStatus, g.TokenBody, g.Token
	g.mu.Unlock()

	if body == "" && status >= 200 && status < 300 {
		raw, _ := json.Marshal(map[string]any{"access_token": token, "expires_in": 3599, "token_type": "Bearer"})
		body = string(raw)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (g *Google) serveAppend(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	g.mu.Lock()
	g.appendCalls = append(g.appendCalls, Append{
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	status, respBody := g.AppendStatus, g.AppendBody
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respBody)
}
