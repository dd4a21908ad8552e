package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// AccountServiceConfig holds the settings of the account service.
type AccountServiceConfig struct {
	Port      string `env:"PORT"       envDefault:"8000"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// AppPasswordResetURL is the base of the link mailed to users; <encoded_uid>/<token> is appended.
	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:3000/api/user/reset"`

	SMTPEnabled bool `env:"SMTP_ENABLED" envDefault:"false"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP. Enable only behind
	// a proxy that overwrites those headers, otherwise clients pick their own rate limit key.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Token     TokenConfig
	Admin     AdminConfig
}

// MongoConfig selects the user store. An empty URI keeps users in memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"accounts"`
}

// RedisConfig configures the rate limiter backend. An empty Addr disables rate limiting.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RateLimitConfig applies to the login and reset email routes, per client IP.
type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW"   envDefault:"1m"`
}

// TokenConfig configures session tokens and password reset tokens.
type TokenConfig struct {
	Issuer                      string        `env:"TOKEN_ISSUER"                    envDefault:"account-service"`
	AccessTokenSecret           string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiresIn        time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN"         envDefault:"15m"`
	RefreshTokenSecret          string        `env:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiresIn       time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN"        envDefault:"168h"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"72h"`

	// PasswordResetBindLastLogin adds the last login time to the state a reset token is bound
	// to, so that logging in voids outstanding reset links. The password hash, active flag and
	// email are always bound.
	PasswordResetBindLastLogin bool `env:"PASSWORD_RESET_BIND_LAST_LOGIN" envDefault:"true"`
}

// AdminConfig seeds an administrator at startup when Email is set.
type AdminConfig struct {
	Email       string `env:"ADMIN_EMAIL"`
	Password    string `env:"ADMIN_PASSWORD"`
	FirstName   string `env:"ADMIN_FIRST_NAME"    envDefault:"Admin"`
	LastName    string `env:"ADMIN_LAST_NAME"     envDefault:"User"`
	DateOfBirth string `env:"ADMIN_DATE_OF_BIRTH" envDefault:"1970-01-01"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*AccountServiceConfig, error) {
	cfg, err := env.ParseAs[AccountServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required secrets and durations.
func (c *AccountServiceConfig) Validate() error {
	var errs []error

	if c.Token.AccessTokenSecret == "" {
		errs = append(errs, errors.New("missing ACCESS_TOKEN_SECRET environment variable"))
	}
	if c.Token.RefreshTokenSecret == "" {
		errs = append(errs, errors.New("missing REFRESH_TOKEN_SECRET environment variable"))
	}
	if c.Token.AccessTokenSecret != "" && c.Token.AccessTokenSecret == c.Token.RefreshTokenSecret {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}
	if c.Token.PasswordResetTokenSecret == "" {
		errs = append(errs, errors.New("missing PASSWORD_RESET_TOKEN_SECRET environment variable"))
	}
	if c.Token.AccessTokenExpiresIn <= 0 || c.Token.RefreshTokenExpiresIn <= 0 {
		errs = append(errs, errors.New("session token lifetimes must be positive"))
	}
	if c.Token.PasswordResetTokenExpiresIn <= 0 {
		errs = append(errs, errors.New("PASSWORD_RESET_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set"))
	}

	return errors.Join(errs...)
}
