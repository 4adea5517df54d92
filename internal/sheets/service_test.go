package sheets_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/golang-jwt/jwt/v5"

	"qrattend/internal/auth"
	"qrattend/internal/credentials"
	"qrattend/internal/credentials/credentialstest"
	"qrattend/internal/sheets"
	"qrattend/internal/sheets/sheetstest"
)

func newService(t *testing.T, g *sheetstest.Google, assets fstest.MapFS) *sheets.Service {
	t.Helper()
	return sheets.NewService(
		assets,
		"credentials.json",
		auth.NewSigner(g.TokenURL(), "https://www.googleapis.com/auth/spreadsheets"),
		auth.NewExchanger(g.TokenURL(), g.Server.Client()),
		sheets.NewClient(g.BaseURL(), "sheet-1", "Registro", g.Server.Client()),
	)
}

func TestSubmit(t *testing.T) {
	g := sheetstest.New(t)
	bundle, key := credentialstest.Bundle(t)
	svc := newService(t, g, credentialstest.FS(t, "credentials.json", bundle))

	if err := svc.Submit(context.Background(), testRow); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if g.TokenCalls() != 1 {
		t.Fatalf("token calls = %d, want 1", g.TokenCalls())
	}
	appends := g.Appends()
	if len(appends) != 1 || appends[0].Authorization != "Bearer tok123" {
		t.Fatalf("appends = %+v", appends)
	}

	assertion := g.Assertions()[0]
	if _, err := jwt.Parse(assertion, func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }); err != nil {
		t.Fatalf("assertion does not verify with the bundle key: %v", err)
	}
}

func TestSubmitTokenRejectedSkipsAppend(t *testing.T) {
	g := sheetstest.New(t)
	g.TokenStatus = http.StatusUnauthorized
	g.TokenBody = `{"error":"invalid_grant"}`
	bundle, _ := credentialstest.Bundle(t)
	svc := newService(t, g, credentialstest.FS(t, "credentials.json", bundle))

	err := svc.Submit(context.Background(), testRow)
	var exErr *auth.TokenExchangeError
	if !errors.As(err, &exErr) || exErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Submit() error = %v, want TokenExchangeError 401", err)
	}
	if n := len(g.Appends()); n != 0 {
		t.Fatalf("append calls = %d, want 0", n)
	}
}

func TestSubmitMissingCredentials(t *testing.T) {
	g := sheetstest.New(t)
	svc := newService(t, g, fstest.MapFS{})

	err := svc.Submit(context.Background(), testRow)
	var unavailable *credentials.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Submit() error = %v, want UnavailableError", err)
	}
	if g.TokenCalls() != 0 || len(g.Appends()) != 0 {
		t.Fatalf("network calls made: token=%d append=%d", g.TokenCalls(), len(g.Appends()))
	}
}

func TestSubmitRederivesTokenEachTime(t *testing.T) {
	g := sheetstest.New(t)
	bundle, _ := credentialstest.Bundle(t)
	svc := newService(t, g, credentialstest.FS(t, "credentials.json", bundle))

	for i := 0; i < 2; i++ {
		if err := svc.Submit(context.Background(), testRow); err != nil {
			t.Fatal(err)
		}
	}
	if g.TokenCalls() != 2 || len(g.Appends()) != 2 {
		t.Fatalf("token calls = %d, appends = %d, want 2 and 2", g.TokenCalls(), len(g.Appends()))
	}
}
