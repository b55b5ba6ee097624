package handlers

import (
	"errors"
	"net/http"

	"github.com/arzonkitob/storefront/internal/auth"
	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/sessions"
	"github.com/arzonkitob/storefront/internal/signup"
	"github.com/arzonkitob/storefront/internal/store"
	"github.com/gofiber/fiber/v2"
)

type SignupHandler struct {
	flows   store.Store[signup.Flow]
	backend signup.Service
	tokens  *auth.TokenMinter
}

func NewSignupHandler(flows store.Store[signup.Flow], backendSvc signup.Service, tokens *auth.TokenMinter) *SignupHandler {
	return &SignupHandler{
		flows:   flows,
		backend: backendSvc,
		tokens:  tokens,
	}
}

type flowResponse struct {
	State         string                `json:"state"`
	ResendEnabled bool                  `json:"resendEnabled,omitempty"`
	FieldErrors   map[string]string     `json:"fieldErrors,omitempty"`
	Notifications []signup.Notification `json:"notifications,omitempty"`
	User          *backend.User         `json:"user,omitempty"`
	Token         string                `json:"token,omitempty"`
}

func (h *SignupHandler) respond(ctx *fiber.Ctx, flow *signup.Flow, collector *notificationCollector, binder *requestSessionBinder) error {
	resp := flowResponse{
		State:         flow.State.String(),
		ResendEnabled: flow.ResendEnabled,
		Notifications: collector.notifications,
	}
	if binder != nil && flow.State == signup.StateDone {
		resp.User = binder.user
		resp.Token = binder.token
	}
	return ctx.JSON(resp)
}

// PostSignup collects the registration form and dispatches the OTP.
func (h *SignupHandler) PostSignup(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.SendStatus(http.StatusBadRequest)
	}

	var draft signup.Draft
	if err := ctx.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	collector := &notificationCollector{}
	binder := &requestSessionBinder{fctx: ctx, tokens: h.tokens}
	ctrl := signup.NewController(h.flows, h.backend, collector, binder)

	flow, err := ctrl.Start(ctx.Context(), session.ID(), draft)
	var formErrors signup.FieldErrors
	if errors.As(err, &formErrors) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(flowResponse{
			State:       signup.StateCollectingDetails.String(),
			FieldErrors: formErrors,
		})
	}
	if err != nil {
		return err
	}
	return h.respond(ctx, flow, collector, binder)
}

// PostSignupVerify submits the one-time code. On acceptance the user is
// registered and signed in within the same request.
func (h *SignupHandler) PostSignupVerify(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.SendStatus(http.StatusBadRequest)
	}

	var body struct {
		OTP string `json:"otp"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	collector := &notificationCollector{}
	binder := &requestSessionBinder{fctx: ctx, tokens: h.tokens}
	ctrl := signup.NewController(h.flows, h.backend, collector, binder)

	flow, err := ctrl.SubmitCode(ctx.Context(), session.ID(), body.OTP)
	if errors.Is(err, signup.ErrFlowNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "signup flow not found")
	}
	var formErrors signup.FieldErrors
	if errors.As(err, &formErrors) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(flowResponse{
			State:       flow.State.String(),
			FieldErrors: formErrors,
		})
	}
	if err != nil {
		return err
	}
	return h.respond(ctx, flow, collector, binder)
}

// PostSignupResend re-dispatches the OTP after the backend reported expiry.
func (h *SignupHandler) PostSignupResend(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.SendStatus(http.StatusBadRequest)
	}

	collector := &notificationCollector{}
	ctrl := signup.NewController(h.flows, h.backend, collector, &requestSessionBinder{fctx: ctx, tokens: h.tokens})

	flow, err := ctrl.Resend(ctx.Context(), session.ID())
	if errors.Is(err, signup.ErrFlowNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "signup flow not found")
	}
	if err != nil {
		return err
	}
	return h.respond(ctx, flow, collector, nil)
}
