package domain

import "errors"

// Messages shown inline by the auth modal.
const (
	MsgUnexpected    = "An unexpected error occurred. Please try again."
	MsgNotConfigured = "Demo mode: Please verify your Supabase URL and anon key are correctly configured"
	MsgSignUpSuccess = "Account created! Please check your email to confirm your account."
	MsgResetLinkSent = "Password reset link sent! Check your email."
	MsgSettingsSaved = "Settings saved successfully!"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrUnknownMode        = errors.New("unknown auth mode")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrSettingsNotFound   = errors.New("settings not found")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrClientClosed       = errors.New("client closed")
	ErrModalClosed        = errors.New("auth modal is not open")
	ErrUnknownTimeRange   = errors.New("unknown time range")
)

// ErrorKind tells apart the origins of the single inline error message.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindGateway    ErrorKind = "gateway"
	KindUnexpected ErrorKind = "unexpected"
)

// ValidationError is a local form error. It never reaches the gateway.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// GatewayError is a structured failure returned by the identity service.
type GatewayError struct {
	Message string
	Status  int
}

func (e *GatewayError) Error() string { return e.Message }

// NewGatewayError builds a GatewayError carrying msg.
func NewGatewayError(msg string) *GatewayError {
	return &GatewayError{Message: msg}
}

// ErrNotConfigured is returned by every stub gateway operation.
var ErrNotConfigured = NewGatewayError(MsgNotConfigured)

// AsGatewayError unwraps err into a *GatewayError if it is one.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
