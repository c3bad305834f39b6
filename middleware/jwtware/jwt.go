package jwtware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ErrJWTMissingOrMalformed covers requests without a usable bearer token:
// no Authorization header, wrong scheme, or an empty credential. It maps to
// 401 like every other failed transition in the auth chain.
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned when a valid token references an identity
// that no longer resolves, e.g. a deleted account
var ErrUserNotFound = errors.New("User not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// AuthClaims is the part of the session claims the middleware needs.
// Declared locally to avoid an import cycle with the root package.
type AuthClaims interface {
	GetUserID() string
}

// TokenValidator validates a raw token string into claims
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// UserResolver turns a verified user id into a full user record. Returning
// an error ends the request with 401.
type UserResolver func(ctx context.Context, userID string) (any, error)

type Config struct {
	Filter         func(*fiber.Ctx) bool
	SuccessHandler fiber.Handler
	ErrorHandler   fiber.ErrorHandler
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
	// UserResolver is optional; when set, the resolved record is stored
	// under UserContextKey
	UserResolver   UserResolver
	ContextKey     string
	UserContextKey string
	AuthScheme     string
	HeaderName     string
}

// New returns a middleware enforcing the request state machine:
// has bearer header -> signature+expiry valid -> user exists.
// Any failed transition ends the request via the ErrorHandler.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.UserResolver != nil {
			user, err := cfg.UserResolver(c.UserContext(), claims.GetUserID())
			if err != nil {
				return cfg.ErrorHandler(c, errors.Wrap(err, errors.CategoryAuth, "User not found").
					WithCode(errors.CodeUnauthorized))
			}
			c.Locals(cfg.UserContextKey, user)
		}

		return cfg.SuccessHandler(c)
	}
}

// ExtractRawToken pulls the bearer credential out of the auth header.
// The legacy stack answered 405 for a missing header; that inconsistency
// is normalized here by funneling every miss through the same error.
func ExtractRawToken(c *fiber.Ctx, cfg Config) (string, error) {
	header := c.Get(cfg.HeaderName)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	scheme := cfg.AuthScheme + " "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", ErrJWTMissingOrMalformed
	}

	raw := strings.TrimSpace(header[len(scheme):])
	if raw == "" {
		return "", ErrJWTMissingOrMalformed
	}

	return raw, nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid or expired token")
		}
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "session"
	}

	if cfg.UserContextKey == "" {
		cfg.UserContextKey = "current_user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = fiber.HeaderAuthorization
	}

	return cfg
}
