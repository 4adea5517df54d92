package scan

import (
	"errors"

	"qrattend/internal/auth"
	"qrattend/internal/credentials"
	"qrattend/internal/decode"
	"qrattend/internal/qr"
	"qrattend/internal/sheets"
)

// ErrCancelled means the user closed the scanner without reading a code.
var ErrCancelled = errors.New("scan cancelled")

// Error categories shown to the user.
const (
	CategoryCredentialUnavailable = "CredentialUnavailable"
	CategorySigning               = "SigningError"
	CategoryTokenExchange         = "TokenExchangeError"
	CategoryAppend                = "AppendError"
	CategoryMalformedQR           = "MalformedQrContent"
	CategoryDecodeNotFound        = "DecodeNotFound"
	CategoryScanCancelled         = "ScanCancelled"
	CategoryOther                 = "Error"
)

// Category names the failure class of err for notifications and metrics.
func Category(err error) string {
	var (
		unavailable *credentials.UnavailableError
		signing     *auth.SigningError
		exchange    *auth.TokenExchangeError
		appendErr   *sheets.AppendError
		malformed   *qr.MalformedContentError
	)
	switch {
	case errors.As(err, &unavailable):
		return CategoryCredentialUnavailable
	case errors.As(err, &signing):
		return CategorySigning
	case errors.As(err, &exchange):
		return CategoryTokenExchange
	case errors.As(err, &appendErr):
		return CategoryAppend
	case errors.As(err, &malformed):
		return CategoryMalformedQR
	case errors.Is(err, decode.ErrNotFound):
		return CategoryDecodeNotFound
	case errors.Is(err, ErrCancelled):
		return CategoryScanCancelled
	default:
		return CategoryOther
	}
}
