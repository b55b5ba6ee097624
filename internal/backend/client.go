package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// User is the identity record owned by the external backend. The storefront
// only ever holds a read-only copy returned in a response.
type User struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type GoogleProfile struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	GoogleID string `json:"googleId"`
	Avatar   string `json:"avatar"`
}

// VerifyStatus is the outcome of an OTP verification. The backend signals
// expiry with a status value of 301; that never escapes this package.
type VerifyStatus int

const (
	VerifyAccepted VerifyStatus = iota
	VerifyExpired
	VerifyRejected
)

type VerifyOutcome struct {
	Status VerifyStatus
	Reason string
}

// the backend reports an expired OTP with this status value
const statusExpired = 301

// envelope is the backend's response shape: exactly one of User, Failure or
// Status is meaningful per endpoint.
type envelope struct {
	Status           int               `json:"status,omitempty"`
	Failure          string            `json:"failure,omitempty"`
	User             *User             `json:"user,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	ServerError      string            `json:"serverError,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the external identity backend. Calls are single-shot: no
// retries, no idempotency assumptions, one failure per call surfaced to the
// caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// status 301 is an application signal here, not a redirect
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *Client) post(ctx context.Context, path string, payload any) (*envelope, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, resp.StatusCode, &ServerError{StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, &TransportError{Err: err}
	}
	if env.ServerError != "" {
		return nil, resp.StatusCode, &ServerError{StatusCode: resp.StatusCode}
	}
	if len(env.ValidationErrors) > 0 {
		return nil, resp.StatusCode, &ValidationError{Fields: env.ValidationErrors}
	}
	return &env, resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Err: err}
	}
	return &env, nil
}

// SendOTP asks the backend to issue a one-time code and deliver it to email.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	env, _, err := c.post(ctx, "/api/otp/send", map[string]string{"email": email})
	if err != nil {
		return err
	}
	if env.Failure != "" {
		return &ApplicationFailure{Reason: env.Failure}
	}
	return nil
}

// VerifyOTP checks a one-time code. Expiry and rejection are outcomes, not
// errors; only transport and server failures return a non-nil error.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (VerifyOutcome, error) {
	env, httpStatus, err := c.post(ctx, "/api/otp/verify", map[string]string{"email": email, "otp": code})
	if err != nil {
		return VerifyOutcome{}, err
	}
	if httpStatus == statusExpired || env.Status == statusExpired {
		return VerifyOutcome{Status: VerifyExpired}, nil
	}
	if env.Failure != "" {
		return VerifyOutcome{Status: VerifyRejected, Reason: env.Failure}, nil
	}
	return VerifyOutcome{Status: VerifyAccepted}, nil
}

// Register creates the user account. Must only be called after the OTP for
// the draft email was accepted.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	env, _, err := c.post(ctx, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	if env.Failure != "" {
		return nil, &ApplicationFailure{Reason: env.Failure}
	}
	if env.User == nil || env.User.ID == "" {
		return nil, &ApplicationFailure{Reason: "no user in response"}
	}
	return env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	env, _, err := c.post(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	if env.Failure != "" {
		return nil, &ApplicationFailure{Reason: env.Failure}
	}
	if env.User == nil || env.User.ID == "" {
		return nil, &ApplicationFailure{Reason: "no user in response"}
	}
	return env.User, nil
}

// GoogleSignIn forwards a validated provider identity and returns the bound
// application user.
func (c *Client) GoogleSignIn(ctx context.Context, profile GoogleProfile) (*User, error) {
	env, _, err := c.post(ctx, "/api/auth/google", profile)
	if err != nil {
		return nil, err
	}
	if env.Failure != "" {
		return nil, &ApplicationFailure{Reason: env.Failure}
	}
	if env.User == nil || env.User.ID == "" {
		return nil, &ApplicationFailure{Reason: "no user in response"}
	}
	return env.User, nil
}

func (c *Client) Profile(ctx context.Context, userID string) (*User, error) {
	env, err := c.get(ctx, "/api/user/profile/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}
	if env.Failure != "" {
		return nil, &ApplicationFailure{Reason: env.Failure}
	}
	if env.User == nil {
		return nil, &ApplicationFailure{Reason: "no user in response"}
	}
	return env.User, nil
}

// Ping reports whether the backend answers at all. Any HTTP response counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	resp.Body.Close()
	return nil
}

// ProbeGoogleAuth posts an empty payload to the Google auth route and returns
// the raw status code. 404 means the route is not registered; 400 means the
// route exists and rejected the empty payload as expected.
func (c *Client) ProbeGoogleAuth(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/google", bytes.NewReader([]byte("{}")))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Err: err}
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// BaseURL is exposed for diagnostics output.
func (c *Client) BaseURL() string {
	return c.baseURL
}
