package config

import (
	"strings"
)

// Auth modes selecting how the request actor is resolved.
const (
	AuthModeOIDC = "oidc"
	AuthModeDev  = "dev"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Environment string

	// Session token signing
	JWTSecret     string
	SessionTTLMin int

	// Actor resolution
	AuthMode string

	// OIDC provider (oidc mode)
	OIDCIssuerURL    string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	OIDCScopes       []string

	// Dev-mode actor (dev mode)
	DevActorID    string
	DevActorEmail string
	DevActorName  string
	DevActorRole  string

	// Dashboard metrics cache
	MetricsCacheTTLSeconds int

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// Use the centralized environment loader
	LoadEnvOnce()

	sessionTTL := GetEnvInt("SESSION_TTL_MINUTES", 480)
	metricsTTL := GetEnvInt("METRICS_CACHE_TTL_SECONDS", 30)

	scopes := strings.Fields(GetEnvWithFallback("OIDC_SCOPES", "openid profile email"))
	origins := strings.Fields(GetEnvWithFallback("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	return &Config{
		Port:        GetEnvWithFallback("PORT", "8080"),
		DatabaseURL: GetEnvWithFallback("DATABASE_URL", "postgresql://localhost:5432/stratify?sslmode=disable"),
		RedisURL:    GetEnvWithFallback("REDIS_URL", ""),
		Environment: GetEnvWithFallback("ENVIRONMENT", "development"),

		JWTSecret:     GetEnvWithFallback("JWT_SECRET", "your-secret-key"),
		SessionTTLMin: sessionTTL,

		AuthMode: GetEnvWithFallback("AUTH_MODE", AuthModeDev),

		OIDCIssuerURL:    GetEnvWithFallback("OIDC_ISSUER_URL", ""),
		OIDCClientID:     GetEnvWithFallback("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: GetEnvWithFallback("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  GetEnvWithFallback("OIDC_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		OIDCScopes:       scopes,

		DevActorID:    GetEnvWithFallback("DEV_ACTOR_ID", "00000000-0000-0000-0000-000000000001"),
		DevActorEmail: GetEnvWithFallback("DEV_ACTOR_EMAIL", "dev@stratify.local"),
		DevActorName:  GetEnvWithFallback("DEV_ACTOR_NAME", "Dev User"),
		DevActorRole:  GetEnvWithFallback("DEV_ACTOR_ROLE", "admin"),

		MetricsCacheTTLSeconds: metricsTTL,

		CORSAllowedOrigins: origins,
	}, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}
