package domain

import (
	"fmt"
	"slices"
	"time"
)

// Allowed values for the settings choice fields.
var (
	Timezones       = []string{"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles", "UTC"}
	Languages       = []string{"en", "es", "fr", "de"}
	Themes          = []string{"light", "dark", "system"}
	SessionTimeouts = []string{"15", "30", "60", "120"}
	Currencies      = []string{"USD", "EUR", "GBP", "JPY"}
)

// Settings are a user's account preferences.
type Settings struct {
	// Profile
	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Timezone string `json:"timezone" bson:"timezone"`
	Language string `json:"language" bson:"language"`

	// Notifications
	EmailNotifications bool `json:"email_notifications" bson:"email_notifications"`
	PushNotifications  bool `json:"push_notifications" bson:"push_notifications"`
	WeeklyReports      bool `json:"weekly_reports" bson:"weekly_reports"`
	MarketingEmails    bool `json:"marketing_emails" bson:"marketing_emails"`

	// Privacy & security
	TwoFactorAuth  bool   `json:"two_factor_auth" bson:"two_factor_auth"`
	SessionTimeout string `json:"session_timeout" bson:"session_timeout"`
	DataSharing    bool   `json:"data_sharing" bson:"data_sharing"`

	// Appearance
	Theme       string `json:"theme" bson:"theme"`
	CompactView bool   `json:"compact_view" bson:"compact_view"`

	// Billing
	Currency     string `json:"currency" bson:"currency"`
	InvoiceEmail string `json:"invoice_email" bson:"invoice_email"`

	UpdatedAt time.Time `json:"updated_at,omitzero" bson:"-"`
}

// DefaultSettings returns the preferences a user starts with.
func DefaultSettings(u *User) Settings {
	email := ""
	if u != nil {
		email = u.Email
	}
	return Settings{
		FullName:           u.DisplayName(),
		Email:              email,
		Timezone:           "America/New_York",
		Language:           "en",
		EmailNotifications: true,
		PushNotifications:  true,
		WeeklyReports:      true,
		SessionTimeout:     "30",
		Theme:              "light",
		Currency:           "USD",
		InvoiceEmail:       email,
	}
}

// Validate checks every choice field against its allowed values.
func (s Settings) Validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"timezone", s.Timezone, Timezones},
		{"language", s.Language, Languages},
		{"theme", s.Theme, Themes},
		{"session_timeout", s.SessionTimeout, SessionTimeouts},
		{"currency", s.Currency, Currencies},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("%w: %s %q is not supported", ErrInvalidSettings, c.field, c.value)
		}
	}
	return nil
}
