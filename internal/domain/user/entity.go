package user

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptyField   = errors.New("email and password are required")
)

type Role string

const (
	RoleEmployee      Role = "employee"
	RoleAdministrator Role = "administrator"
)

func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleEmployee, RoleAdministrator:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// User is a demo-grade identity; there is no real identity provider
// behind it. Credentials are verified against a seeded directory.
type User struct {
	id         string
	email      string
	name       string
	role       Role
	department string
}

func NewUser(id, email, name string, role Role, department string) *User {
	return &User{
		id:         id,
		email:      email,
		name:       name,
		role:       role,
		department: department,
	}
}

func (u *User) ID() string         { return u.id }
func (u *User) Email() string      { return u.email }
func (u *User) Name() string       { return u.name }
func (u *User) Role() Role         { return u.role }
func (u *User) Department() string { return u.department }

type Credentials struct {
	email    string
	password string
}

func NewCredentials(email, password string) (Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Credentials{}, ErrEmptyField
	}
	if !strings.Contains(email, "@") {
		return Credentials{}, ErrInvalidEmail
	}
	return Credentials{email: email, password: password}, nil
}

func (c Credentials) Email() string    { return c.email }
func (c Credentials) Password() string { return c.password }
