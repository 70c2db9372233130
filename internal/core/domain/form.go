package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Mode is the auth modal's current screen.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
	ModeForgot Mode = "forgot"
)

// MinPasswordLength is enforced for login and signup.
const MinPasswordLength = 8

// Validation messages, in evaluation order.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 8 characters long"
	MsgFullNameRequired = "Full name is required"
	MsgConfirmRequired  = "Please confirm your password"
	MsgPasswordMismatch = "Passwords do not match"
	MsgTermsRequired    = "You must accept the Terms of Service and Privacy Policy"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLogin, ModeSignup, ModeForgot:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// FormState holds the modal's field values. The zero value for a mode is the
// state produced by opening the modal or switching to that mode.
type FormState struct {
	Mode            Mode   `json:"mode"`
	Email           string `json:"email"`
	Password        string `json:"-"`
	ConfirmPassword string `json:"-"`
	FullName        string `json:"full_name"`
	RememberMe      bool   `json:"remember_me"`
	AcceptTerms     bool   `json:"accept_terms"`
}

// NewFormState returns an empty form for mode.
func NewFormState(mode Mode) FormState {
	return FormState{Mode: mode}
}

// IsEmpty reports whether every field still holds its initial value.
func (f FormState) IsEmpty() bool {
	return f == NewFormState(f.Mode)
}

// Validate applies the form rules for the current mode and returns the first
// failure, or nil.
func (f FormState) Validate() *ValidationError {
	if f.Email == "" {
		return &ValidationError{Field: "email", Message: MsgEmailRequired}
	}
	if !emailPattern.MatchString(f.Email) {
		return &ValidationError{Field: "email", Message: MsgEmailInvalid}
	}

	if f.Mode != ModeForgot {
		if f.Password == "" {
			return &ValidationError{Field: "password", Message: MsgPasswordRequired}
		}
		if utf8.RuneCountInString(f.Password) < MinPasswordLength {
			return &ValidationError{Field: "password", Message: MsgPasswordTooShort}
		}
	}

	if f.Mode == ModeSignup {
		switch {
		case f.FullName == "":
			return &ValidationError{Field: "full_name", Message: MsgFullNameRequired}
		case f.ConfirmPassword == "":
			return &ValidationError{Field: "confirm_password", Message: MsgConfirmRequired}
		case f.Password != f.ConfirmPassword:
			return &ValidationError{Field: "confirm_password", Message: MsgPasswordMismatch}
		case !f.AcceptTerms:
			return &ValidationError{Field: "accept_terms", Message: MsgTermsRequired}
		}
	}

	return nil
}

// ModeCopy is the static text the modal shows for a mode.
type ModeCopy struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	SubmitLabel string `json:"submit_label"`
	BusyLabel   string `json:"busy_label"`
	SwitchHint  string `json:"switch_hint"`
	SwitchLabel string `json:"switch_label"`
	SwitchTo    Mode   `json:"switch_to"`
}

var modeCopy = map[Mode]ModeCopy{
	ModeLogin: {
		Title:       "Welcome Back",
		Subtitle:    "Sign in to your account to continue",
		SubmitLabel: "Sign In",
		BusyLabel:   "Signing in...",
		SwitchHint:  "Don't have an account? ",
		SwitchLabel: "Sign up",
		SwitchTo:    ModeSignup,
	},
	ModeSignup: {
		Title:       "Create Account",
		Subtitle:    "Join thousands of teams making data-driven decisions",
		SubmitLabel: "Create Account",
		BusyLabel:   "Creating account...",
		SwitchHint:  "Already have an account? ",
		SwitchLabel: "Sign in",
		SwitchTo:    ModeLogin,
	},
	ModeForgot: {
		Title:       "Reset Password",
		Subtitle:    "Enter your email to receive a password reset link",
		SubmitLabel: "Send Reset Link",
		BusyLabel:   "Sending...",
		SwitchHint:  "Remember your password? ",
		SwitchLabel: "Sign in",
		SwitchTo:    ModeLogin,
	},
}

// Copy returns the modal text for m.
func (m Mode) Copy() ModeCopy {
	return modeCopy[m]
}
