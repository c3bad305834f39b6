package captable

import (
	"context"
)

// Auther authenticates credentials and hands out session tokens
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies a credential pair and issues a bearer token for the
// resolved identity
func (s *Auther) Login(ctx context.Context, identifier, password string) (*AccessToken, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("login verify identity error: %v", err)
		return nil, err
	}

	token, err := s.tokenService.Issue(identity.ID())
	if err != nil {
		s.logger.Error("login token issue error: %v", err)
		return nil, err
	}

	return token, nil
}
