package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	CORSOrigins    string
	AuthRateLimit  int
	BaseURL        string
	DatabaseURL    string
	RedisURL       string
	NATSURL        string
	NATSSubject    string
	JWTSecret      string
	JWTTTL         time.Duration
	MailAPIKey     string
	MailFrom       string
	MailEndpoint   string
	ResetTokenTTL  time.Duration
	ResetCooldown  time.Duration
	LogLevel       string
	SeedAdminEmail string
	SeedAdminPass  string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ResetLink builds the URL emailed to users who asked for a password reset.
func (c Config) ResetLink(token string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/reset-password?token=" + token
}

// LoginLink is the sign-in page referenced by welcome emails.
func (c Config) LoginLink() string {
	return strings.TrimRight(c.BaseURL, "/") + "/login"
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRACKER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Recruiter Tracker")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.base_url", "http://localhost:3000")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("auth.rate_limit", 10)
	v.SetDefault("nats.subject", "tracker.audit")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("mail.from", "Prime Staffing <onboarding@resend.dev>")
	v.SetDefault("mail.endpoint", "https://api.resend.com/")
	v.SetDefault("reset.token_ttl", "1h")
	v.SetDefault("reset.cooldown", "1m")
	v.SetDefault("log.level", "info")

	jwtTTL, err := parseDuration(v, "jwt.ttl")
	if err != nil {
		return Config{}, err
	}
	resetTTL, err := parseDuration(v, "reset.token_ttl")
	if err != nil {
		return Config{}, err
	}
	cooldown, err := parseDuration(v, "reset.cooldown")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		CORSOrigins:    v.GetString("cors.origins"),
		AuthRateLimit:  v.GetInt("auth.rate_limit"),
		BaseURL:        v.GetString("app.base_url"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		NATSURL:        v.GetString("nats.url"),
		NATSSubject:    v.GetString("nats.subject"),
		JWTSecret:      v.GetString("jwt.secret"),
		JWTTTL:         jwtTTL,
		MailAPIKey:     v.GetString("mail.api_key"),
		MailFrom:       v.GetString("mail.from"),
		MailEndpoint:   v.GetString("mail.endpoint"),
		ResetTokenTTL:  resetTTL,
		ResetCooldown:  cooldown,
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		SeedAdminEmail: v.GetString("seed.admin_email"),
		SeedAdminPass:  v.GetString("seed.admin_password"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
