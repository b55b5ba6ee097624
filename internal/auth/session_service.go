package auth

import (
	"context"
	"errors"

	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/oauth"
)

var (
	ErrMissingProviderEmail = errors.New("provider identity has no email")
	ErrMissingProviderID    = errors.New("provider identity has no account id")
	ErrNoUserInResponse     = errors.New("backend returned no user")
)

// IdentityService is the part of the backend client session establishment
// relies on.
type IdentityService interface {
	Profile(ctx context.Context, userID string) (*backend.User, error)
	GoogleSignIn(ctx context.Context, profile backend.GoogleProfile) (*backend.User, error)
}

// SessionService exchanges verified identities for application sessions.
type SessionService struct {
	backend IdentityService
	tokens  *TokenMinter
}

func NewSessionService(backendSvc IdentityService, tokens *TokenMinter) *SessionService {
	return &SessionService{
		backend: backendSvc,
		tokens:  tokens,
	}
}

// EstablishWithUserID is the credential entry point. The user id is trusted
// because it immediately follows a server-verified registration or login; the
// profile lookup confirms the account still exists.
func (s *SessionService) EstablishWithUserID(ctx context.Context, userID string) (*backend.User, string, error) {
	user, err := s.backend.Profile(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateProviderPayload checks the provider identity carries everything the
// backend exchange needs. A callback without an email or account id rejects
// the sign-in before anything is forwarded.
func ValidateProviderPayload(info *oauth.OAuthUserInfo) error {
	if info == nil || info.Email == "" {
		return ErrMissingProviderEmail
	}
	if info.ID == "" {
		return ErrMissingProviderID
	}
	return nil
}

// ExchangeWithBackend forwards the provider identity and returns the bound
// application user.
func (s *SessionService) ExchangeWithBackend(ctx context.Context, info *oauth.OAuthUserInfo) (*backend.User, error) {
	fullName := info.Name
	if fullName == "" {
		fullName = "User"
	}
	user, err := s.backend.GoogleSignIn(ctx, backend.GoogleProfile{
		Email:    info.Email,
		FullName: fullName,
		GoogleID: info.ID,
		Avatar:   info.Picture,
	})
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrNoUserInResponse
	}
	return user, nil
}

// EstablishWithProvider runs the full provider chain: validate, exchange,
// mint token. Session binding stays with the caller, which owns the cookie.
func (s *SessionService) EstablishWithProvider(ctx context.Context, info *oauth.OAuthUserInfo) (*backend.User, string, error) {
	if err := ValidateProviderPayload(info); err != nil {
		return nil, "", err
	}
	user, err := s.ExchangeWithBackend(ctx, info)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
