package credentials

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Bundle is a service-account identity read from the credential asset.
type Bundle struct {
	IssuerEmail   string
	PrivateKeyPEM string
}

// UnavailableError reports a missing or malformed credential asset.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("credential unavailable (%s): %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// file mirrors the fields we use from a Google service-account key file.
type file struct {
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
}

// Load reads the credential asset at path from fsys and checks that it carries
// an issuer email and a PKCS8 RSA private key.
func Load(fsys fs.FS, path string) (Bundle, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Bundle{}, &UnavailableError{Path: path, Err: err}
	}

	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return Bundle{}, &UnavailableError{Path: path, Err: fmt.Errorf("decode json: %w", err)}
	}
	if strings.TrimSpace(f.ClientEmail) == "" {
		return Bundle{}, &UnavailableError{Path: path, Err: errors.New("client_email missing")}
	}
	if strings.TrimSpace(f.PrivateKey) == "" {
		return Bundle{}, &UnavailableError{Path: path, Err: errors.New("private_key missing")}
	}
	if _, err := ParsePrivateKey(f.PrivateKey); err != nil {
		return Bundle{}, &UnavailableError{Path: path, Err: err}
	}

	return Bundle{IssuerEmail: f.ClientEmail, PrivateKeyPEM: f.PrivateKey}, nil
}

// ParsePrivateKey decodes a PEM-armored PKCS8 RSA private key. Escaped "\n"
// sequences, as found in keys pasted through environment variables, are accepted.
func ParsePrivateKey(keyPEM string) (*rsa.PrivateKey, error) {
	normalized := strings.ReplaceAll(keyPEM, `\n`, "\n")
	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, errors.New("no PEM block found in private_key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("unexpected PEM block %q, want PKCS8 \"PRIVATE KEY\"", block.Type)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse pkcs8: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want RSA", key)
	}
	return rsaKey, nil
}
