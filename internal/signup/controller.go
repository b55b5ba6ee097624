package signup

import (
	"context"
	"errors"

	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/store"
	"github.com/arzonkitob/storefront/params"
)

var (
	ErrFlowNotFound = errors.New("signup flow not found")
)

// Notification is what the frontend renders as a toast.
type Notification struct {
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// Notifier is the fire-and-forget notification surface. The flow never reads
// anything back from it.
type Notifier interface {
	Notify(n Notification)
}

// Service is the subset of the backend client the flow drives.
type Service interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (backend.VerifyOutcome, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.User, error)
}

// Establisher binds a freshly registered user to the caller's session.
type Establisher interface {
	Establish(ctx context.Context, user *backend.User) error
}

// Controller owns the registration state machine for a single request. It is
// cheap to construct; handlers build one per request with the request-scoped
// notifier and session binder.
type Controller struct {
	flows    store.Store[Flow]
	backend  Service
	notifier Notifier
	sessions Establisher
}

func NewController(flows store.Store[Flow], backendSvc Service, notifier Notifier, sessions Establisher) *Controller {
	return &Controller{
		flows:    flows,
		backend:  backendSvc,
		notifier: notifier,
		sessions: sessions,
	}
}

func (c *Controller) notify(description string, destructive bool) {
	c.notifier.Notify(Notification{Description: description, Destructive: destructive})
}

func (c *Controller) save(ctx context.Context, flowID string, flow *Flow) error {
	return c.flows.Set(ctx, flowID, *flow, params.SignupFlowMaxAge)
}

// failureMessage converts a backend error into the single notification text
// the user sees for it.
func failureMessage(err error) string {
	var (
		appErr   *backend.ApplicationFailure
		srvErr   *backend.ServerError
		valErr   *backend.ValidationError
		transErr *backend.TransportError
	)
	switch {
	case errors.As(err, &appErr):
		if appErr.Reason != "" {
			return appErr.Reason
		}
		return MsgGenericError
	case errors.As(err, &srvErr):
		return MsgServerError
	case errors.As(err, &valErr):
		return MsgInvalidData
	case errors.As(err, &transErr):
		return MsgNoResponse
	default:
		return MsgGenericError
	}
}

// Start validates the registration form and dispatches the OTP. On success
// the flow moves to AwaitingOtp; on dispatch failure it stays in
// CollectingDetails with an error notification.
func (c *Controller) Start(ctx context.Context, flowID string, draft Draft) (*Flow, error) {
	if formErrors := ValidateDraft(draft); len(formErrors) > 0 {
		return nil, formErrors
	}

	flow, err := c.flows.Get(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		flow = &Flow{State: StateCollectingDetails}
	} else if err != nil {
		return nil, err
	}
	if flow.Busy {
		return flow, nil
	}

	flow.Email = draft.Email
	flow.Password = draft.Password
	flow.FullName = draft.FullName
	flow.Busy = true
	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}

	sendErr := c.backend.SendOTP(ctx, draft.Email)
	flow.Busy = false
	if sendErr != nil {
		flow.State = StateCollectingDetails
		c.notify(failureMessage(sendErr), true)
	} else {
		flow.State = StateAwaitingOtp
		flow.ResendEnabled = false
		c.notify(MsgOTPSent, false)
	}
	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// SubmitCode verifies the one-time code and, when accepted, registers the
// user and establishes the session. Expiry re-enables resend; rejection keeps
// the user on the code entry screen.
func (c *Controller) SubmitCode(ctx context.Context, flowID string, code string) (*Flow, error) {
	flow, err := c.flows.Get(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFlowNotFound
	} else if err != nil {
		return nil, err
	}
	if flow.Busy || flow.State != StateAwaitingOtp {
		return flow, nil
	}
	if formErrors := ValidateCode(code); len(formErrors) > 0 {
		return flow, formErrors
	}

	flow.Busy = true
	flow.State = StateSubmitting
	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}

	outcome, verifyErr := c.backend.VerifyOTP(ctx, flow.Email, code)
	flow.Busy = false
	if verifyErr != nil {
		flow.State = StateAwaitingOtp
		c.notify(failureMessage(verifyErr), true)
		if err := c.save(ctx, flowID, flow); err != nil {
			return nil, err
		}
		return flow, nil
	}

	switch outcome.Status {
	case backend.VerifyExpired:
		flow.State = StateAwaitingOtp
		flow.ResendEnabled = true
		c.notify(MsgOTPExpired, true)
	case backend.VerifyRejected:
		flow.State = StateAwaitingOtp
		if outcome.Reason != "" {
			c.notify(outcome.Reason, true)
		} else {
			c.notify(MsgGenericError, true)
		}
	case backend.VerifyAccepted:
		return c.completeRegistration(ctx, flowID, flow)
	}

	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

func (c *Controller) completeRegistration(ctx context.Context, flowID string, flow *Flow) (*Flow, error) {
	draft := flow.draft()
	user, err := c.backend.Register(ctx, backend.RegisterRequest{
		Email:    draft.Email,
		Password: draft.Password,
		FullName: draft.FullName,
	})
	if err != nil {
		flow.State = StateFailed
		flow.FailReason = failureMessage(err)
		c.notify(flow.FailReason, true)
		if saveErr := c.save(ctx, flowID, flow); saveErr != nil {
			return nil, saveErr
		}
		return flow, nil
	}

	if err := c.sessions.Establish(ctx, user); err != nil {
		flow.State = StateFailed
		flow.FailReason = failureMessage(err)
		c.notify(flow.FailReason, true)
		if saveErr := c.save(ctx, flowID, flow); saveErr != nil {
			return nil, saveErr
		}
		return flow, nil
	}

	flow.State = StateDone
	c.notify(MsgRegistered, false)
	// completed flows are not kept around
	if err := c.flows.Del(ctx, flowID); err != nil {
		return nil, err
	}
	return flow, nil
}

// Resend re-dispatches the OTP. It is only honored after the backend reported
// the previous code expired.
func (c *Controller) Resend(ctx context.Context, flowID string) (*Flow, error) {
	flow, err := c.flows.Get(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFlowNotFound
	} else if err != nil {
		return nil, err
	}
	if flow.Busy || flow.State != StateAwaitingOtp || !flow.ResendEnabled {
		return flow, nil
	}

	flow.Busy = true
	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}

	sendErr := c.backend.SendOTP(ctx, flow.Email)
	flow.Busy = false
	if sendErr != nil {
		c.notify(failureMessage(sendErr), true)
	} else {
		flow.ResendEnabled = false
		c.notify(MsgOTPSent, false)
	}
	if err := c.save(ctx, flowID, flow); err != nil {
		return nil, err
	}
	return flow, nil
}
