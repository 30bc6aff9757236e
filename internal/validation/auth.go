// Package validation checks auth request payloads before anything is sent
// upstream. Login reports only the first failure; signup collects every
// failure into one message list.
package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// LoginInput is the login payload under validation
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput is the signup payload under validation. VerifiedEmail is a
// pointer so a missing flag can be told apart from an explicit false.
type SignupInput struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	VerifiedEmail        *bool
	Password             string
	PasswordConfirmation string
}

// Login validates login credentials, stopping at the first failure.
// Returns the failure message and false when invalid.
func Login(in LoginInput) (string, bool) {
	if in.Email == "" {
		return "email is required", false
	}
	if !emailPattern.MatchString(in.Email) {
		return "Invalid email format", false
	}
	if in.Password == "" {
		return "password is required", false
	}
	if len(in.Password) < MinPasswordLength {
		return "Password must be at least 6 characters long", false
	}
	return "", true
}

// Signup validates a signup payload and returns every failure message.
// An empty slice means the payload is valid.
func Signup(in SignupInput) []string {
	var msgs []string

	if in.FirstName == "" {
		msgs = append(msgs, "first_name is required")
	}
	if in.LastName == "" {
		msgs = append(msgs, "last_name is required")
	}
	if in.Email == "" {
		msgs = append(msgs, "email is required")
	} else if !emailPattern.MatchString(in.Email) {
		msgs = append(msgs, "Invalid email format")
	}
	if in.Phone == "" {
		msgs = append(msgs, "phone is required")
	}
	if in.VerifiedEmail == nil {
		msgs = append(msgs, "verified_email is required")
	}
	if in.Password == "" {
		msgs = append(msgs, "password is required")
	} else if len(in.Password) < MinPasswordLength {
		msgs = append(msgs, "Password must be at least 6 characters long")
	}
	if in.PasswordConfirmation == "" {
		msgs = append(msgs, "password_confirmation is required")
	} else if in.Password != in.PasswordConfirmation {
		msgs = append(msgs, "password_confirmation does not match password")
	}

	return msgs
}
