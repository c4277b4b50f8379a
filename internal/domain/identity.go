package domain

import "strings"

// Identity describes the caller as claimed in the request payload.
// There is no session or token verification in front of it; handlers
// build an Identity once at the boundary and services take it from there.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Normalize trims whitespace and lowercases the email, and defaults the
// role to "user". Emails are compared verbatim everywhere else, so this
// is the single place casing is fixed up.
func (i Identity) Normalize() Identity {
	i.ID = strings.TrimSpace(i.ID)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Name = strings.TrimSpace(i.Name)
	if i.Role == "" {
		i.Role = RoleUser
	}
	return i
}

// Member converts the identity into an embeddable group member.
// A blank display name becomes "Anonymous".
func (i Identity) Member() Member {
	m := Member{ID: i.ID, Email: i.Email, Name: i.Name, Role: i.Role}
	if m.Name == "" {
		m.Name = "Anonymous"
	}
	return m
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
