package models

import "strings"

// User is the minimal profile returned by the backend at login
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins the user's first and last names for display
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Session holds the authenticated identity for the current browsing
// context. Written at login, cleared only by explicit logout; read
// everywhere else.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a token
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
