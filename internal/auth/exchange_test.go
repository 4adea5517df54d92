package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestExchangeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			t.Errorf("parse form: %v", err)
		}
		if form.Get("grant_type") != GrantTypeJWTBearer {
			t.Errorf("grant_type = %q", form.Get("grant_type"))
		}
		if form.Get("assertion") != "signed.jwt.value" {
			t.Errorf("assertion = %q", form.Get("assertion"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok123","expires_in":3599,"token_type":"Bearer"}`)
	}))
	defer srv.Close()

	token, err := NewExchanger(srv.URL, srv.Client()).Exchange(context.Background(), "signed.jwt.value")
	if err != nil {
		t.Fatalf("Exchange() = %v", err)
	}
	if token != "tok123" {
		t.Fatalf("token = %q, want tok123", token)
	}
}

func TestExchangeFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid_grant"}`},
		{"server error", http.StatusInternalServerError, "boom"},
		{"missing token", http.StatusOK, `{"token_type":"Bearer"}`},
		{"not json", http.StatusOK, "<html>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewExchanger(srv.URL, srv.Client()).Exchange(context.Background(), "a")
			var exErr *TokenExchangeError
			if !errors.As(err, &exErr) {
				t.Fatalf("Exchange() error = %v, want TokenExchangeError", err)
			}
			if exErr.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", exErr.StatusCode, tc.status)
			}
			if exErr.Body != tc.body {
				t.Fatalf("body = %q, want %q", exErr.Body, tc.body)
			}
		})
	}
}

func TestExchangeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewExchanger(srv.URL, nil).Exchange(context.Background(), "a")
	var exErr *TokenExchangeError
	if !errors.As(err, &exErr) {
		t.Fatalf("Exchange() error = %v, want TokenExchangeError", err)
	}
	if exErr.StatusCode != 0 || exErr.Err == nil {
		t.Fatalf("unexpected error shape: %+v", exErr)
	}
}
