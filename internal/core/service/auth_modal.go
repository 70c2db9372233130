package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

type submitState int

const (
	stateIdle submitState = iota
	stateSubmitting
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeInvalid    Outcome = "invalid"
	OutcomeSucceeded  Outcome = "succeeded"
	OutcomeFailed     Outcome = "failed"
	OutcomeUnexpected Outcome = "unexpected"
	OutcomeDiscarded  Outcome = "discarded"
)

// ModalInput carries the field values typed by the user.
type ModalInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	RememberMe      bool
	AcceptTerms     bool
}

// ModalView is the renderable state of the modal.
type ModalView struct {
	Open         bool             `json:"open"`
	Mode         domain.Mode      `json:"mode"`
	Copy         domain.ModeCopy  `json:"copy"`
	Form         domain.FormState `json:"form"`
	ShowPassword bool             `json:"show_password"`
	Busy         bool             `json:"busy"`
	Error        string           `json:"error,omitempty"`
	ErrorKind    domain.ErrorKind `json:"error_kind,omitempty"`
	Success      string           `json:"success,omitempty"`
}

// SubmitResult is what Submit hands back to the transport layer.
type SubmitResult struct {
	View       ModalView
	Outcome    Outcome
	Mode       domain.Mode
	RememberMe bool
}

// AuthModal is the sign-in / sign-up / password-reset dialog of one client.
//
// Submissions move the modal idle -> submitting -> idle. Every open, close,
// mode switch and submission bumps the generation; a gateway result that
// comes back for an older generation is dropped.
type AuthModal struct {
	ops ports.AuthOperations
	log zerolog.Logger

	mu           sync.Mutex
	open         bool
	form         domain.FormState
	showPassword bool
	state        submitState
	errMsg       string
	errKind      domain.ErrorKind
	success      string
	generation   uint64
	tornDown     bool
}

func NewAuthModal(ops ports.AuthOperations, log zerolog.Logger) *AuthModal {
	return &AuthModal{
		ops:  ops,
		log:  log,
		form: domain.NewFormState(domain.ModeLogin),
	}
}

// Open shows the modal in mode with a fresh form.
func (m *AuthModal) Open(mode domain.Mode) (ModalView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tornDown {
		return ModalView{}, domain.ErrClientClosed
	}
	m.resetLocked(mode)
	m.open = true
	return m.viewLocked(), nil
}

// Close hides the modal and discards its form. An in-flight submission keeps
// running but its result is ignored.
func (m *AuthModal) Close() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked(m.form.Mode)
	m.open = false
	return m.viewLocked()
}

// SwitchMode replaces the form with an empty one for mode. The gateway is
// never called.
func (m *AuthModal) SwitchMode(mode domain.Mode) (ModalView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tornDown {
		return ModalView{}, domain.ErrClientClosed
	}
	if !m.open {
		return m.viewLocked(), domain.ErrModalClosed
	}
	m.resetLocked(mode)
	return m.viewLocked(), nil
}

// TogglePasswordVisibility flips whether the password is shown in clear.
func (m *AuthModal) TogglePasswordVisibility() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showPassword = !m.showPassword
	return m.viewLocked()
}

// View returns the current state.
func (m *AuthModal) View() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

// Submit validates in and, when valid, dispatches exactly one gateway call
// for the current mode.
func (m *AuthModal) Submit(ctx context.Context, in ModalInput) (SubmitResult, error) {
	m.mu.Lock()
	switch {
	case m.tornDown:
		m.mu.Unlock()
		return SubmitResult{}, domain.ErrClientClosed
	case !m.open:
		view := m.viewLocked()
		m.mu.Unlock()
		return SubmitResult{View: view}, domain.ErrModalClosed
	case m.state == stateSubmitting:
		view := m.viewLocked()
		m.mu.Unlock()
		return SubmitResult{View: view}, domain.ErrSubmissionInFlight
	}

	m.form = domain.FormState{
		Mode:            m.form.Mode,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		FullName:        in.FullName,
		RememberMe:      in.RememberMe,
		AcceptTerms:     in.AcceptTerms,
	}
	form := m.form

	if verr := form.Validate(); verr != nil {
		m.errMsg, m.errKind, m.success = verr.Message, domain.KindValidation, ""
		view := m.viewLocked()
		m.mu.Unlock()
		return SubmitResult{View: view, Outcome: OutcomeInvalid, Mode: form.Mode}, nil
	}

	m.state = stateSubmitting
	m.clearMessagesLocked()
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	err := m.dispatch(ctx, form)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation || m.tornDown {
		m.log.Debug().
			Str("mode", string(form.Mode)).
			Err(err).
			Msg("discarding late auth result")
		return SubmitResult{View: m.viewLocked(), Outcome: OutcomeDiscarded, Mode: form.Mode}, nil
	}
	m.state = stateIdle

	res := SubmitResult{Mode: form.Mode, RememberMe: form.RememberMe}
	switch ge, isGateway := domain.AsGatewayError(err); {
	case err == nil:
		res.Outcome = OutcomeSucceeded
		switch form.Mode {
		case domain.ModeLogin:
			m.resetLocked(form.Mode)
			m.open = false
		case domain.ModeSignup:
			m.success = domain.MsgSignUpSuccess
		case domain.ModeForgot:
			m.success = domain.MsgResetLinkSent
		}
	case isGateway:
		res.Outcome = OutcomeFailed
		m.errMsg, m.errKind = ge.Message, domain.KindGateway
	default:
		res.Outcome = OutcomeUnexpected
		m.errMsg, m.errKind = domain.MsgUnexpected, domain.KindUnexpected
		m.log.Error().Err(err).Str("mode", string(form.Mode)).Msg("auth submission failed unexpectedly")
	}
	res.View = m.viewLocked()
	return res, nil
}

func (m *AuthModal) dispatch(ctx context.Context, form domain.FormState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("auth gateway panic: %v", r)
		}
	}()

	switch form.Mode {
	case domain.ModeLogin:
		return m.ops.SignIn(ctx, form.Email, form.Password)
	case domain.ModeSignup:
		return m.ops.SignUp(ctx, form.Email, form.Password, form.FullName)
	case domain.ModeForgot:
		return m.ops.ResetPassword(ctx, form.Email)
	}
	return fmt.Errorf("dispatch: %w: %q", domain.ErrUnknownMode, form.Mode)
}

// Teardown permanently disables the modal. Used when the client goes away.
func (m *AuthModal) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tornDown = true
	m.open = false
	m.resetLocked(m.form.Mode)
}

func (m *AuthModal) resetLocked(mode domain.Mode) {
	m.form = domain.NewFormState(mode)
	m.showPassword = false
	m.state = stateIdle
	m.clearMessagesLocked()
	m.generation++
}

func (m *AuthModal) clearMessagesLocked() {
	m.errMsg, m.errKind, m.success = "", domain.KindNone, ""
}

func (m *AuthModal) viewLocked() ModalView {
	return ModalView{
		Open:         m.open,
		Mode:         m.form.Mode,
		Copy:         m.form.Mode.Copy(),
		Form:         m.form,
		ShowPassword: m.showPassword,
		Busy:         m.state == stateSubmitting,
		Error:        m.errMsg,
		ErrorKind:    m.errKind,
		Success:      m.success,
	}
}
