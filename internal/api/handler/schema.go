package handler

import (
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
)

type modeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=login signup forgot"`
}

// submitRequest carries the raw modal fields. Field rules are enforced by the
// modal itself so its messages stay exact; the tags only bound sizes.
type submitRequest struct {
	Email           string `json:"email"            validate:"max=320"`
	Password        string `json:"password"         validate:"max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"max=72"`
	FullName        string `json:"full_name"        validate:"max=200"`
	RememberMe      bool   `json:"remember_me"`
	AcceptTerms     bool   `json:"accept_terms"`
}

func (r submitRequest) input() service.ModalInput {
	return service.ModalInput{
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FullName:        r.FullName,
		RememberMe:      r.RememberMe,
		AcceptTerms:     r.AcceptTerms,
	}
}

type submitResponse struct {
	Modal   service.ModalView `json:"modal"`
	Outcome service.Outcome   `json:"outcome"`
	// Redirect is set when the client should navigate, e.g. after sign-in.
	Redirect string `json:"redirect,omitempty"`
}

type sessionResponse struct {
	Loading bool         `json:"loading"`
	User    *domain.User `json:"user"`
}

type landingResponse struct {
	domain.Landing
	Modal service.ModalView `json:"modal"`
}

type customersQuery struct {
	Search string `query:"search" validate:"max=100"`
	Status string `query:"status" validate:"omitempty,oneof=all active inactive"`
}

type settingsRequest struct {
	FullName string `json:"full_name" validate:"max=200"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Phone    string `json:"phone"     validate:"max=40"`
	Timezone string `json:"timezone"  validate:"required"`
	Language string `json:"language"  validate:"required"`

	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	WeeklyReports      bool `json:"weekly_reports"`
	MarketingEmails    bool `json:"marketing_emails"`

	TwoFactorAuth  bool   `json:"two_factor_auth"`
	SessionTimeout string `json:"session_timeout" validate:"required"`
	DataSharing    bool   `json:"data_sharing"`

	Theme       string `json:"theme" validate:"required"`
	CompactView bool   `json:"compact_view"`

	Currency     string `json:"currency"      validate:"required"`
	InvoiceEmail string `json:"invoice_email" validate:"omitempty,email"`
}

func (r settingsRequest) settings() domain.Settings {
	return domain.Settings{
		FullName:           r.FullName,
		Email:              r.Email,
		Phone:              r.Phone,
		Timezone:           r.Timezone,
		Language:           r.Language,
		EmailNotifications: r.EmailNotifications,
		PushNotifications:  r.PushNotifications,
		WeeklyReports:      r.WeeklyReports,
		MarketingEmails:    r.MarketingEmails,
		TwoFactorAuth:      r.TwoFactorAuth,
		SessionTimeout:     r.SessionTimeout,
		DataSharing:        r.DataSharing,
		Theme:              r.Theme,
		CompactView:        r.CompactView,
		Currency:           r.Currency,
		InvoiceEmail:       r.InvoiceEmail,
	}
}

type settingsResponse struct {
	Settings *domain.Settings `json:"settings"`
	Message  string           `json:"message,omitempty"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
