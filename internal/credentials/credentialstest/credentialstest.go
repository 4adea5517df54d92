// Package credentialstest builds throwaway service-account credentials for tests.
package credentialstest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"
	"testing/fstest"

	"qrattend/internal/credentials"
)

// IssuerEmail is the client_email written into generated assets.
const IssuerEmail = "scanner@attendance-test.iam.gserviceaccount.com"

// Key generates an RSA key and returns it with its PKCS8 PEM encoding.
func Key(t testing.TB) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// Bundle returns a fresh credential bundle and its private key.
func Bundle(t testing.TB) (credentials.Bundle, *rsa.PrivateKey) {
	t.Helper()
	key, keyPEM := Key(t)
	return credentials.Bundle{IssuerEmail: IssuerEmail, PrivateKeyPEM: keyPEM}, key
}

// FS returns an in-memory asset tree holding b as a service-account JSON file at path.
func FS(t testing.TB, path string, b credentials.Bundle) fstest.MapFS {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": b.IssuerEmail,
		"private_key":  b.PrivateKeyPEM,
	})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}
	return fstest.MapFS{path: &fstest.MapFile{Data: raw}}
}
