package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors for STORAGE_BACKEND.
const (
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// UserCredential is one configured login. Password is the plaintext
// fallback; PasswordHash, when set, takes precedence and must be a
// bcrypt hash.
type UserCredential struct {
	Username     string
	Password     string
	PasswordHash string
}

// EmailConfig holds SMTP settings for the receipt mailer.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
}

// Config holds application configuration.
type Config struct {
	Port              string
	IsProduction      bool
	AllowedOrigins    []string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	Users []UserCredential

	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DataFile       string
	ReceiptsKey    string

	Email EmailConfig

	BusinessName string
	CurrencyCode string
}

// LoadConfig loads configuration from environment variables and .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ALLOWED_ORIGINS", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "receipts-backend")
	// Fallback logins matching the system this replaces. Known smell;
	// override via USERNAME_1/PASSWORD_1 and USERNAME_2/PASSWORD_2.
	viper.SetDefault("USERNAME_1", "admin")
	viper.SetDefault("PASSWORD_1", "Codify@26")
	viper.SetDefault("USERNAME_2", "user")
	viper.SetDefault("PASSWORD_2", "user123")
	viper.SetDefault("PASSWORD_1_HASH", "")
	viper.SetDefault("PASSWORD_2_HASH", "")
	viper.SetDefault("STORAGE_BACKEND", BackendFile)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DATA_FILE", "receipts.json")
	viper.SetDefault("RECEIPTS_KEY", "codify-receipts")
	viper.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_PORT", 587)
	viper.SetDefault("EMAIL_USER", "")
	viper.SetDefault("EMAIL_PASS", "")
	viper.SetDefault("EMAIL_FROM", "")
	viper.SetDefault("EMAIL_FROM_NAME", "Codify")
	viper.SetDefault("BUSINESS_NAME", "Codify")
	viper.SetDefault("CURRENCY_CODE", "LKR")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.AllowedOrigins = splitAndTrim(viper.GetString("ALLOWED_ORIGINS"))

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.Users = loadUsers()
	if len(cfg.Users) == 0 {
		log.Println("Warning: no login credentials configured; login will always fail.")
	}

	cfg.StorageBackend = viper.GetString("STORAGE_BACKEND")
	switch cfg.StorageBackend {
	case BackendRedis, BackendFile, BackendMemory:
	default:
		log.Printf("Warning: unknown STORAGE_BACKEND '%s'. Defaulting to %s.\n", cfg.StorageBackend, BackendFile)
		cfg.StorageBackend = BackendFile
	}
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.DataFile = viper.GetString("DATA_FILE")
	cfg.ReceiptsKey = viper.GetString("RECEIPTS_KEY")

	cfg.Email = EmailConfig{
		Host:     viper.GetString("EMAIL_HOST"),
		Port:     viper.GetInt("EMAIL_PORT"),
		Username: viper.GetString("EMAIL_USER"),
		Password: viper.GetString("EMAIL_PASS"),
		FromName: viper.GetString("EMAIL_FROM_NAME"),
		From:     viper.GetString("EMAIL_FROM"),
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}
	if cfg.Email.Username == "" {
		log.Println("Warning: EMAIL_USER not set. Receipt emailing will fail until configured.")
	}

	cfg.BusinessName = viper.GetString("BUSINESS_NAME")
	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	return cfg, nil
}

// splitAndTrim splits a comma separated list, dropping empty entries.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func loadUsers() []UserCredential {
	users := []UserCredential{
		{
			Username:     viper.GetString("USERNAME_1"),
			Password:     viper.GetString("PASSWORD_1"),
			PasswordHash: viper.GetString("PASSWORD_1_HASH"),
		},
		{
			Username:     viper.GetString("USERNAME_2"),
			Password:     viper.GetString("PASSWORD_2"),
			PasswordHash: viper.GetString("PASSWORD_2_HASH"),
		},
	}

	valid := users[:0]
	for _, u := range users {
		if u.Username != "" && (u.Password != "" || u.PasswordHash != "") {
			valid = append(valid, u)
		}
	}
	return valid
}
