package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string
	DBDSN   string

	JWTSecret string

	StripeSecretKey string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	CORSAllowedOrigins []string
}

// LoadEnv reads configuration from the environment, with .env support
// for local development. Missing values fall back to dev defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:         getenv("APP_ADDR", ":8080"),
		GinMode:         getenv("GIN_MODE", ""),
		DBDSN:           getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/automart?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret:       getenv("JWT_SECRET", "super-secret-key-change-me"),
		StripeSecretKey: getenv("STRIPE_SECRET_KEY", ""),
		SMTPHost:        getenv("SMTP_HOST", "localhost"),
		SMTPUser:        getenv("SMTP_USER", ""),
		SMTPPass:        getenv("SMTP_PASS", ""),
		MailFrom:        getenv("MAIL_FROM", "noreply@automart.local"),
	}

	env.SMTPPort = 587
	if p, err := strconv.Atoi(getenv("SMTP_PORT", "")); err == nil && p > 0 {
		env.SMTPPort = p
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	} else {
		env.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return env
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
