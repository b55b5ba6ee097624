package handlers

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/arzonkitob/storefront/internal/auth"
	"github.com/arzonkitob/storefront/internal/oauth"
	"github.com/gofiber/fiber/v2"
)

func makeOAuthProvidersMap(oauthProviders []oauth.OAuthProvider) map[string]oauth.OAuthProvider {
	oauthProvidersMap := make(map[string]oauth.OAuthProvider)
	for _, provider := range oauthProviders {
		oauthProvidersMap[provider.Name()] = provider
	}
	return oauthProvidersMap
}

type OAuthHandler struct {
	providers          map[string]oauth.OAuthProvider
	sessions           *auth.SessionService
	stateEncryptionKey string
}

func NewOAuthHandler(oauthProviders []oauth.OAuthProvider, sessionService *auth.SessionService, stateEncryptionKey string) *OAuthHandler {
	return &OAuthHandler{
		providers:          makeOAuthProvidersMap(oauthProviders),
		sessions:           sessionService,
		stateEncryptionKey: stateEncryptionKey,
	}
}

// GetOAuthLogin redirects the browser to the provider's consent screen.
func (h *OAuthHandler) GetOAuthLogin(ctx *fiber.Ctx) error {
	providerName := ctx.Params("provider")
	provider, ok := h.providers[providerName]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unsupported OAuth provider: %s", providerName))
	}

	state := encryptState(AuthState{
		ReturnURL:  ctx.Query("callbackUrl", "/"),
		CreateTime: time.Now(),
	}, h.stateEncryptionKey)
	return ctx.Redirect(provider.GetAuthCodeURL(state))
}

// GetOAuthCallback is the provider redirect target: validate the provider
// identity, exchange it with the backend and bind the session. Any failure
// rejects the sign-in and routes the user to the auth-error page.
func (h *OAuthHandler) GetOAuthCallback(ctx *fiber.Ctx) error {
	providerName := ctx.Params("provider")
	provider, ok := h.providers[providerName]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unsupported OAuth provider: %s", providerName))
	}

	state, err := decryptState(ctx.Query("state"), h.stateEncryptionKey)
	if err != nil {
		slog.Warn("OAuth callback with invalid state", "provider", providerName, "error", err)
		return ctx.Redirect("/error")
	}

	oauthToken, err := provider.ExchangeToken(ctx.Context(), ctx.Query("code"))
	if err != nil {
		slog.Error("OAuth code exchange failed", "provider", providerName, "error", err)
		return ctx.Redirect("/error")
	}

	oauthUserInfo, err := provider.GetUserInfo(ctx.Context(), oauthToken)
	if err != nil {
		slog.Error("Failed to fetch OAuth user info", "provider", providerName, "error", err)
		return ctx.Redirect("/error")
	}

	user, _, err := h.sessions.EstablishWithProvider(ctx.Context(), oauthUserInfo)
	if err != nil {
		slog.Error("OAuth sign-in rejected", "provider", providerName, "error", err)
		return ctx.Redirect("/error?message=" + url.QueryEscape(MsgGoogleSignInError))
	}

	bindSession(ctx, user)
	return ctx.Redirect(state.ReturnURL)
}
