package params

import "time"

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	// OTPCodeLength is the number of characters in a one-time passcode.
	OTPCodeLength = 6

	// SignupFlowMaxAge is how long an in-progress registration flow is kept
	// before it expires and the user has to start over from the form.
	SignupFlowMaxAge = 15 * time.Minute

	// SessionTokenMaxAge is the lifetime of the signed token minted when a
	// session is established. The cookie session outlives it; the token is
	// only presented to the identity backend.
	SessionTokenMaxAge = 1 * time.Minute
)
