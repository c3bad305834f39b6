package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// AppConfig is the root configuration document, loaded by the config
// container from files and environment overrides
type AppConfig struct {
	Server      Server      `json:"server" yaml:"server"`
	Persistence Persistence `json:"persistence" yaml:"persistence"`
	Auth        Auth        `json:"auth" yaml:"auth"`
	Mailer      Mailer      `json:"mailer" yaml:"mailer"`
}

func (a *AppConfig) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Server),
		validation.Field(&a.Persistence),
		validation.Field(&a.Auth),
	)
}

func (a *AppConfig) GetServer() Server { return a.Server }

func (a *AppConfig) GetPersistence() Persistence { return a.Persistence }

func (a *AppConfig) GetAuth() Auth { return a.Auth }

func (a *AppConfig) GetMailer() Mailer { return a.Mailer }

type Server struct {
	Address string `json:"address" yaml:"address"`
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required),
	)
}

func (s Server) GetAddress() string { return s.Address }

type Persistence struct {
	Driver                string `json:"driver" yaml:"driver"`
	DSN                   string `json:"dsn" yaml:"dsn"`
	Debug                 bool   `json:"debug" yaml:"debug"`
	PingTimeoutExpression string `json:"ping_timeout" yaml:"ping_timeout"`
}

func (p Persistence) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Driver, validation.Required),
		validation.Field(&p.DSN, validation.Required),
	)
}

func (p Persistence) GetDriver() string { return p.Driver }

func (p Persistence) GetDSN() string { return p.DSN }

// GetServer satisfies persistence.Config, which addresses the database
// server through this accessor rather than GetDSN
func (p Persistence) GetServer() string { return p.DSN }

func (p Persistence) GetOtelIdentifier() string { return "" }

func (p Persistence) GetDebug() bool { return p.Debug }

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

// Auth satisfies the root package's auth options interface
type Auth struct {
	SigningKey      string `json:"signing_key" yaml:"signing_key"`
	PasswordSecret  string `json:"password_secret" yaml:"password_secret"`
	TokenExpiration int    `json:"token_expiration" yaml:"token_expiration"`
	Issuer          string `json:"issuer" yaml:"issuer"`
	ContextKey      string `json:"context_key" yaml:"context_key"`
	AuthScheme      string `json:"auth_scheme" yaml:"auth_scheme"`
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required),
		validation.Field(&a.PasswordSecret, validation.Required),
	)
}

func (a Auth) GetSigningKey() string { return a.SigningKey }

func (a Auth) GetPasswordSecret() string { return a.PasswordSecret }

// GetTokenExpiration is in seconds
func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration == 0 {
		return 86400
	}
	return a.TokenExpiration
}

func (a Auth) GetIssuer() string { return a.Issuer }

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "session"
	}
	return a.ContextKey
}

func (a Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

type Mailer struct {
	Provider string `json:"provider" yaml:"provider"`
	Addr     string `json:"addr" yaml:"addr"`
	From     string `json:"from" yaml:"from"`
}

func (m Mailer) GetProvider() string { return m.Provider }

func (m Mailer) GetAddr() string { return m.Addr }

func (m Mailer) GetFrom() string { return m.From }
