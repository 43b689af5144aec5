package models

import "strings"

// Credentials is what the entry screen collects for one login attempt.
// It is never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the signed-in user's profile together with the bearer token
// issued by the account API. It is also the payload persisted under the
// user_data key.
type Session struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	Image       string `json:"image"`
	AccessToken string `json:"accessToken"`
}

// Valid reports whether s carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// FullName joins first and last name, skipping empty parts.
func (s *Session) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Greeting is the name shown on the home screen header.
func (s *Session) Greeting() string {
	if s == nil || s.FirstName == "" {
		return "User"
	}
	return s.FirstName
}
