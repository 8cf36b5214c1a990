package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings read from the environment.
// Defaults reproduce the permissive demo behavior: in-memory storage,
// no OTP expiry, unlimited verify attempts, mock tokens, log delivery.
type Config struct {
	Port           string
	UseMemoryStore bool

	// OTP policy. Zero values disable the checks.
	OTPExpiryMinutes int
	OTPMaxAttempts   int

	// Token issuance. Scheme is "mock" or "jwt".
	TokenScheme   string
	SecretKey     string
	JWTExpiryDays int

	// Trip planning strategy: "template" or "budget".
	Planner string

	// OTP delivery: "log" or "smtp".
	OTPDelivery  string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		UseMemoryStore:   getEnv("USE_MEMORY_STORE", "true") == "true",
		OTPExpiryMinutes: getEnvInt("OTP_EXPIRY_MINUTES", 0),
		OTPMaxAttempts:   getEnvInt("OTP_MAX_ATTEMPTS", 0),
		TokenScheme:      getEnv("TOKEN_SCHEME", "mock"),
		SecretKey:        getEnv("SECRET_KEY", "change-this-secret-key"),
		JWTExpiryDays:    getEnvInt("JWT_EXPIRY_DAYS", 7),
		Planner:          getEnv("PLANNER", "template"),
		OTPDelivery:      getEnv("OTP_DELIVERY", "log"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
