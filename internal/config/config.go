package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env string

	// Spreadsheet target and Google endpoints.
	SpreadsheetID string `validate:"required"`
	SheetName     string `validate:"required"`
	SheetsBaseURL string `validate:"required,url"`
	TokenURL      string `validate:"required,url"`
	SheetsScope   string `validate:"required"`

	// Bundled assets.
	AssetsDir       string `validate:"required"`
	CredentialsFile string `validate:"required"`
	TestImageFile   string `validate:"required"`

	// Preferred network interface for the device MAC, e.g. wlan0.
	DeviceInterface string

	// Zero keeps the transport default.
	HTTPTimeout time.Duration `validate:"gte=0"`

	// Notification fan-out; empty RedisAddr disables it.
	RedisAddr     string
	NotifyChannel string

	// Kiosk server.
	HTTPPort        string
	KioskIssuer     string
	KioskSigningKey string
	KioskTokenTTL   time.Duration
	RateLimitPerMin int `validate:"gte=0"`
}

// Load returns application config populated from environment variables with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		SheetName:       getEnv("SHEET_NAME", "Registro"),
		SheetsBaseURL:   getEnv("SHEETS_BASE_URL", "https://sheets.googleapis.com"),
		TokenURL:        getEnv("TOKEN_URL", "https://oauth2.googleapis.com/token"),
		SheetsScope:     getEnv("SHEETS_SCOPE", "https://www.googleapis.com/auth/spreadsheets"),
		AssetsDir:       getEnv("ASSETS_DIR", "assets"),
		CredentialsFile: getEnv("CREDENTIALS_FILE", "credentials.json"),
		TestImageFile:   getEnv("TEST_IMAGE_FILE", "test_qr.png"),
		DeviceInterface: getEnv("DEVICE_INTERFACE", ""),
		HTTPTimeout:     durationEnv("HTTP_TIMEOUT", 0),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		NotifyChannel:   getEnv("NOTIFY_CHANNEL", "attendance:notifications"),
		HTTPPort:        getEnv("HTTP_PORT", "8081"),
		KioskIssuer:     getEnv("KIOSK_ISSUER", "qrattend-kiosk"),
		KioskSigningKey: getEnv("KIOSK_SIGNING_KEY", "dev-signing-secret-change"),
		KioskTokenTTL:   durationEnv("KIOSK_TOKEN_TTL", 30*24*time.Hour),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 30),
	}
}

// Validate reports the first invalid or missing setting.
func (a App) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
