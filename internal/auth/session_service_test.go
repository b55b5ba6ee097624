package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/oauth"
)

type fakeIdentityService struct {
	profileUser *backend.User
	profileErr  error
	googleUser  *backend.User
	googleErr   error
	lastProfile backend.GoogleProfile
}

func (f *fakeIdentityService) Profile(ctx context.Context, userID string) (*backend.User, error) {
	return f.profileUser, f.profileErr
}

func (f *fakeIdentityService) GoogleSignIn(ctx context.Context, profile backend.GoogleProfile) (*backend.User, error) {
	f.lastProfile = profile
	return f.googleUser, f.googleErr
}

func newTestSessionService(svc *fakeIdentityService) *SessionService {
	return NewSessionService(svc, NewTokenMinter("test-secret"))
}

func TestValidateProviderPayload(t *testing.T) {
	tests := []struct {
		name    string
		info    *oauth.OAuthUserInfo
		wantErr error
	}{
		{
			name: "valid",
			info: &oauth.OAuthUserInfo{ID: "gid1", Email: "a@b.com", Name: "Ali"},
		},
		{
			name:    "provider id but no email",
			info:    &oauth.OAuthUserInfo{ID: "gid1"},
			wantErr: ErrMissingProviderEmail,
		},
		{
			name:    "email but no provider id",
			info:    &oauth.OAuthUserInfo{Email: "a@b.com"},
			wantErr: ErrMissingProviderID,
		},
		{
			name:    "nil payload",
			wantErr: ErrMissingProviderEmail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProviderPayload(tt.info)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEstablishWithProviderRejectsInvalidPayload(t *testing.T) {
	svc := &fakeIdentityService{}
	sessionService := newTestSessionService(svc)

	// providerAccountId present but no email: sign-in must be rejected
	// before anything reaches the backend
	_, _, err := sessionService.EstablishWithProvider(context.Background(), &oauth.OAuthUserInfo{ID: "gid1"})
	if !errors.Is(err, ErrMissingProviderEmail) {
		t.Fatalf("expected ErrMissingProviderEmail, got %v", err)
	}
	if svc.lastProfile.GoogleID != "" {
		t.Fatal("invalid payload must not be forwarded to the backend")
	}
}

func TestEstablishWithProvider(t *testing.T) {
	svc := &fakeIdentityService{
		googleUser: &backend.User{ID: "u2", Email: "a@b.com"},
	}
	sessionService := newTestSessionService(svc)

	user, token, err := sessionService.EstablishWithProvider(context.Background(), &oauth.OAuthUserInfo{
		ID:      "gid1",
		Email:   "a@b.com",
		Picture: "https://example.com/p.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u2" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if svc.lastProfile.FullName != "User" {
		t.Fatalf("missing provider name should default to \"User\", got %q", svc.lastProfile.FullName)
	}
	if svc.lastProfile.Avatar != "https://example.com/p.png" {
		t.Fatalf("avatar not forwarded: %+v", svc.lastProfile)
	}
}

func TestEstablishWithProviderNoUserInResponse(t *testing.T) {
	svc := &fakeIdentityService{
		googleUser: &backend.User{},
	}
	sessionService := newTestSessionService(svc)

	_, _, err := sessionService.EstablishWithProvider(context.Background(), &oauth.OAuthUserInfo{
		ID:    "gid1",
		Email: "a@b.com",
	})
	if !errors.Is(err, ErrNoUserInResponse) {
		t.Fatalf("expected ErrNoUserInResponse, got %v", err)
	}
}

func TestEstablishWithUserID(t *testing.T) {
	svc := &fakeIdentityService{
		profileUser: &backend.User{ID: "u1", Email: "a@b.com"},
	}
	sessionService := newTestSessionService(svc)

	user, token, err := sessionService.EstablishWithUserID(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := NewTokenMinter("test-secret").Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("unexpected token claims: %+v", claims)
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenMinter("secret-a").Generate("u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenMinter("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}
