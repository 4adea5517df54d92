package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"qrattend/internal/credentials"
)

// AssertionTTL is the lifetime of a signed assertion.
const AssertionTTL = time.Hour

// SigningError reports that a credential bundle could not produce an assertion.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("sign assertion: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// Signer builds RS256 JWT-bearer assertions for one audience and scope.
type Signer struct {
	Audience string
	Scope    string
}

// NewSigner creates a signer targeting the token endpoint audience.
func NewSigner(audience, scope string) *Signer {
	return &Signer{Audience: audience, Scope: scope}
}

// Sign returns a compact JWS carrying iss, aud, scope, iat and exp=iat+1h.
// Output is deterministic for identical bundle and time.
func (s *Signer) Sign(b credentials.Bundle, now time.Time) (string, error) {
	key, err := credentials.ParsePrivateKey(b.PrivateKeyPEM)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	issuedAt := now.Unix()
	claims := jwt.MapClaims{
		"iss":   b.IssuerEmail,
		"aud":   s.Audience,
		"scope": s.Scope,
		"iat":   issuedAt,
		"exp":   issuedAt + int64(AssertionTTL/time.Second),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", &SigningError{Err: err}
	}
	return signed, nil
}
