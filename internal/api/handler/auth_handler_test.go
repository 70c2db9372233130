package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
)

func TestAuthHandler_OpenModal(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/modal/open", `{"mode":"signup"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[service.ModalView](t, rec)
	assert.True(t, view.Open)
	assert.Equal(t, domain.ModeSignup, view.Mode)
	assert.Equal(t, domain.ModeSignup.Copy(), view.Copy)
	assert.NotNil(t, app.cookie, "client cookie should be issued")
}

func TestAuthHandler_OpenModal_InvalidMode(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/modal/open", `{"mode":"register"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "mode must be one of")
}

func TestAuthHandler_SwitchModeRequiresOpenModal(t *testing.T) {
	app := newTestApp(t)

	app.do(http.MethodGet, "/auth/modal", "")
	app.do(http.MethodPost, "/auth/modal/mode", `{"mode":"forgot"}`)

	assert.ErrorIs(t, app.lastErr, domain.ErrModalClosed)
}

func TestAuthHandler_SwitchModeResetsForm(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)
	app.do(http.MethodPost, "/auth/modal/password-visibility", "")
	app.do(http.MethodPost, "/auth/modal/submit", `{"email":"nope","password":"x"}`)

	rec := app.do(http.MethodPost, "/auth/modal/mode", `{"mode":"forgot"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[service.ModalView](t, rec)
	assert.Equal(t, domain.ModeForgot, view.Mode)
	assert.Empty(t, view.Error)
	assert.False(t, view.ShowPassword)
	assert.True(t, view.Form.IsEmpty())
}

func TestAuthHandler_SubmitValidationFailure(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)

	rec := app.do(http.MethodPost, "/auth/modal/submit", `{"email":"","password":"password123"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[submitResponse](t, rec)
	assert.Equal(t, service.OutcomeInvalid, resp.Outcome)
	assert.Equal(t, domain.MsgEmailRequired, resp.Modal.Error)
	assert.Equal(t, domain.KindValidation, resp.Modal.ErrorKind)
	assert.True(t, resp.Modal.Open)
}

func TestAuthHandler_SubmitOversizedField(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	rec := app.do(http.MethodPost, "/auth/modal/submit", `{"email":"`+string(long)+`@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "email must be at most 320 characters")
}

func TestAuthHandler_SubmitOverlongPasswordLeavesModalUntouched(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)

	password := strings.Repeat("é", 73)
	rec := app.do(http.MethodPost, "/auth/modal/submit", `{"email":"ada@example.com","password":"`+password+`"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "password must be at most 72 characters")

	view := decode[service.ModalView](t, app.do(http.MethodGet, "/auth/modal", ""))
	assert.True(t, view.Open)
	assert.Empty(t, view.Error)
	assert.False(t, view.Busy)
}

func TestAuthHandler_SubmitWithClosedModal(t *testing.T) {
	app := newTestApp(t)

	app.do(http.MethodPost, "/auth/modal/submit", `{"email":"ada@example.com","password":"password123"}`)

	assert.ErrorIs(t, app.lastErr, domain.ErrModalClosed)
}

func TestAuthHandler_SignUpShowsSuccess(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"signup"}`)

	rec := app.do(http.MethodPost, "/auth/modal/submit", `{
		"email":"ada@example.com","password":"password123","confirm_password":"password123",
		"full_name":"Ada Lovelace","accept_terms":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[submitResponse](t, rec)
	assert.Equal(t, service.OutcomeSucceeded, resp.Outcome)
	assert.Equal(t, domain.MsgSignUpSuccess, resp.Modal.Success)
	assert.True(t, resp.Modal.Open)
	assert.Empty(t, resp.Redirect)
}

func TestAuthHandler_ForgotShowsSuccess(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"forgot"}`)

	rec := app.do(http.MethodPost, "/auth/modal/submit", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[submitResponse](t, rec)
	assert.Equal(t, domain.MsgResetLinkSent, resp.Modal.Success)
}

func TestAuthHandler_SignInWithWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.signUpAndSignIn(false)
	app.do(http.MethodPost, "/auth/signout", "")

	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)
	rec := app.do(http.MethodPost, "/auth/modal/submit", `{"email":"ada@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[submitResponse](t, rec)
	assert.Equal(t, service.OutcomeFailed, resp.Outcome)
	assert.Equal(t, "Invalid login credentials", resp.Modal.Error)
	assert.Equal(t, domain.KindGateway, resp.Modal.ErrorKind)
	assert.True(t, resp.Modal.Open)
}

func TestAuthHandler_SignInClosesModalAndRemembers(t *testing.T) {
	app := newTestApp(t)

	rec := app.signUpAndSignIn(true)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[submitResponse](t, rec)
	assert.Equal(t, service.OutcomeSucceeded, resp.Outcome)
	assert.False(t, resp.Modal.Open)
	assert.True(t, resp.Modal.Form.IsEmpty())
	assert.Equal(t, "/dashboard", resp.Redirect)
	require.NotNil(t, app.cookie)
	assert.Positive(t, app.cookie.MaxAge)

	rec = app.do(http.MethodGet, "/auth/session", "")
	session := decode[sessionResponse](t, rec)
	assert.False(t, session.Loading)
	require.NotNil(t, session.User)
	assert.Equal(t, "ada@example.com", session.User.Email)
}

func TestAuthHandler_SignOutRedirectsHome(t *testing.T) {
	app := newTestApp(t)
	app.signUpAndSignIn(true)

	rec := app.do(http.MethodPost, "/auth/signout", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, app.cookie.MaxAge, "cookie should fall back to a browser session")

	rec = app.do(http.MethodGet, "/auth/session", "")
	assert.Nil(t, decode[sessionResponse](t, rec).User)

	rec = app.do(http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAuthHandler_CloseModal(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/auth/modal/open", `{"mode":"login"}`)

	rec := app.do(http.MethodPost, "/auth/modal/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[service.ModalView](t, rec).Open)

	rec = app.do(http.MethodGet, "/auth/modal", "")
	assert.False(t, decode[service.ModalView](t, rec).Open)
}
