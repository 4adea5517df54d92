package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// KioskClaims identify a kiosk allowed to submit scans over HTTP.
type KioskClaims struct {
	Kiosk string `json:"kiosk"`
	jwt.RegisteredClaims
}

// IssueKioskToken signs an HS256 token for a kiosk.
func IssueKioskToken(kiosk, issuer, key string, ttl time.Duration) (string, time.Time, error) {
	if kiosk == "" {
		return "", time.Time{}, errors.New("kiosk name required")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := KioskClaims{
		Kiosk: kiosk,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   kiosk,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseKioskToken validates a kiosk token and returns its claims.
func ParseKioskToken(tokenStr, key, issuer string) (KioskClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &KioskClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return KioskClaims{}, err
	}
	claims, ok := parsed.Claims.(*KioskClaims)
	if !ok || !parsed.Valid || claims.Kiosk == "" {
		return KioskClaims{}, errors.New("invalid token")
	}
	return *claims, nil
}
