package auth

import "os"

// User is the minimal identity the checkout flow cares about.
type User struct {
	FirstName string
	LastName  string
	Email     string
}

// Provider exposes the optional current user. A nil user means guest
// checkout; drafts then start with empty contact fields.
type Provider interface {
	CurrentUser() *User
}

// GuestProvider always reports no authenticated user.
type GuestProvider struct{}

func (GuestProvider) CurrentUser() *User { return nil }

// EnvProvider reads the current user from the environment, which is how the
// session-restoration boundary is stubbed when running locally.
type EnvProvider struct{}

func (EnvProvider) CurrentUser() *User {
	email := os.Getenv("STOREFRONT_USER_EMAIL")
	if email == "" {
		return nil
	}
	return &User{
		FirstName: os.Getenv("STOREFRONT_USER_FIRST_NAME"),
		LastName:  os.Getenv("STOREFRONT_USER_LAST_NAME"),
		Email:     email,
	}
}

// StaticProvider returns a fixed user; used in tests.
type StaticProvider struct{ User *User }

func (p StaticProvider) CurrentUser() *User { return p.User }
