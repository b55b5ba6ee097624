package signup

import "strconv"

// State is the position of a registration flow. Exactly one flow exists per
// browser session; it restarts from CollectingDetails when the session's
// snapshot expires.
type State int

const (
	StateCollectingDetails State = iota
	StateAwaitingOtp
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollectingDetails:
		return "collecting_details"
	case StateAwaitingOtp:
		return "awaiting_otp"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalBinary writes the state as its decimal value so a Flow snapshot can
// be stored as redis hash fields.
func (s State) MarshalBinary() ([]byte, error) {
	return strconv.AppendInt(nil, int64(s), 10), nil
}

func (s *State) UnmarshalBinary(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*s = State(v)
	return nil
}

// Draft holds the registration form fields before the OTP gate.
type Draft struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

// Flow is the persisted snapshot of one registration flow, keyed by session
// id in the flow store. Busy holds while a backend call is in flight so a
// second submit or resend from the same session is a no-op.
type Flow struct {
	Email         string `redis:"email"`
	FullName      string `redis:"full_name"`
	Password      string `redis:"password"`
	State         State  `redis:"state"`
	Busy          bool   `redis:"busy"`
	ResendEnabled bool   `redis:"resend_enabled"`
	FailReason    string `redis:"fail_reason"`
}

func (f *Flow) draft() Draft {
	return Draft{
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
	}
}
