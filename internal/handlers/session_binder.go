package handlers

import (
	"context"
	"time"

	"github.com/arzonkitob/storefront/internal/auth"
	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/sessions"
	"github.com/gofiber/fiber/v2"
)

// bindSession writes the authenticated identity into the cookie session.
func bindSession(ctx *fiber.Ctx, user *backend.User) {
	sessions.Set(ctx, sessions.SessionData{
		IP:        ctx.IP(),
		UserID:    user.ID,
		Email:     user.Email,
		LoginTime: time.Now(),
	})
}

// requestSessionBinder adapts the fiber request to the signup controller's
// Establisher. It keeps the minted token and user so the handler can include
// them in the response.
type requestSessionBinder struct {
	fctx   *fiber.Ctx
	tokens *auth.TokenMinter
	user   *backend.User
	token  string
}

func (b *requestSessionBinder) Establish(_ context.Context, user *backend.User) error {
	token, err := b.tokens.Generate(user.ID)
	if err != nil {
		return err
	}
	b.user = user
	b.token = token
	bindSession(b.fctx, user)
	return nil
}
