package handlers

import (
	"context"
	"errors"

	"github.com/arzonkitob/storefront/internal/auth"
	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/sessions"
	"github.com/arzonkitob/storefront/internal/signup"
	"github.com/gofiber/fiber/v2"
)

// LoginService is the part of the backend client the login handler relays to.
type LoginService interface {
	Login(ctx context.Context, email, password string) (*backend.User, error)
}

type LoginHandler struct {
	backend  LoginService
	sessions *auth.SessionService
}

func NewLoginHandler(backendSvc LoginService, sessionService *auth.SessionService) *LoginHandler {
	return &LoginHandler{
		backend:  backendSvc,
		sessions: sessionService,
	}
}

type loginResponse struct {
	Notifications []signup.Notification `json:"notifications,omitempty"`
	User          *backend.User         `json:"user,omitempty"`
	Token         string                `json:"token,omitempty"`
}

func loginFailureMessage(err error) string {
	var appErr *backend.ApplicationFailure
	if errors.As(err, &appErr) && appErr.Reason != "" {
		return appErr.Reason
	}
	return MsgGenericError
}

// PostLogin relays credentials to the backend and establishes the session on
// success. Any failure is a single destructive notification; the user may
// simply retry.
func (h *LoginHandler) PostLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.Redirect("/")
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.backend.Login(ctx.Context(), body.Email, body.Password)
	if err != nil {
		return ctx.JSON(loginResponse{
			Notifications: []signup.Notification{{Description: loginFailureMessage(err), Destructive: true}},
		})
	}

	// same shape as the registration epilogue: the backend-confirmed user id
	// is exchanged for a profile and a session token
	user, token, err := h.sessions.EstablishWithUserID(ctx.Context(), user.ID)
	if err != nil {
		return ctx.JSON(loginResponse{
			Notifications: []signup.Notification{{Description: loginFailureMessage(err), Destructive: true}},
		})
	}

	bindSession(ctx, user)
	return ctx.JSON(loginResponse{
		Notifications: []signup.Notification{{Description: MsgLoggedIn}},
		User:          user,
		Token:         token,
	})
}

func (h *LoginHandler) PostLogout(ctx *fiber.Ctx) error {
	if err := sessions.Destroy(ctx); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true})
}
