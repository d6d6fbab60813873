package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string

	MailDriver string // "log" or "smtp"
	SMTPAddr   string // host:port
	SMTPFrom   string
}

// LoadEnv reads .env when present, then builds the typed environment with
// defaults suitable for local development.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:    getenv("APP_ADDR", ":8080"),
		GinMode:    getenv("GIN_MODE", ""),
		DBDSN:      getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/jombo?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret:  getenv("JWT_SECRET", "super-secret-key-change-me"),
		MailDriver: getenv("MAIL_DRIVER", "log"),
		SMTPAddr:   getenv("SMTP_ADDR", "127.0.0.1:25"),
		SMTPFrom:   getenv("SMTP_FROM", "noreply@jombo.com"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
