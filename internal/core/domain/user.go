package domain

import "strings"

// UserMetadata is the optional profile data the identity service keeps
// alongside an account.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// User is a transient, non-authoritative copy of an identity owned by the
// auth gateway.
type User struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Metadata UserMetadata `json:"user_metadata"`
}

// DisplayName picks the friendliest name available for the user.
// Falls back to the email local part and finally to "User".
func (u *User) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.Metadata.FullName != "" {
		return u.Metadata.FullName
	}
	if u.Metadata.Name != "" {
		return u.Metadata.Name
	}
	if local, _, _ := strings.Cut(u.Email, "@"); local != "" {
		return local
	}
	return "User"
}
