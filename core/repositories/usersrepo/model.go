package usersrepo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jrazmi/tasktrack/sdk/validation"
)

// Field limits for user profiles.
const (
	MaxNameLen        = 100
	MaxBioLen         = 500
	MinPasswordLength = 6

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// User is the public projection of an account. It never carries the
// password hash.
type User struct {
	ID        string    `db:"id" bson:"_id"`
	Name      string    `db:"name" bson:"name"`
	Email     string    `db:"email" bson:"email"`
	Bio       string    `db:"bio" bson:"bio"`
	Avatar    string    `db:"avatar" bson:"avatar"`
	CreatedAt time.Time `db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" bson:"updatedAt"`
}

// Credentials is a user together with its password hash. Only the login and
// password-change paths load it.
type Credentials struct {
	User         `bson:",inline"`
	PasswordHash string `db:"password_hash" bson:"passwordHash"`
}

// CreateUser holds registration input.
type CreateUser struct {
	Name     string
	Email    string
	Password string
}

// Validate checks every field and reports all failures at once.
func (c CreateUser) Validate() error {
	var fe validation.FieldErrors
	checkName(&fe, c.Name)
	if !validation.Email(NormalizeEmail(c.Email)) {
		fe.Add("email", "Valid email is required")
	}
	CheckNewPassword(&fe, "password", "Password", c.Password)
	return fe.Err()
}

// CheckNewPassword adds a field error to fe when pw is too short, or too
// long to hash. label starts the message, e.g. "New password".
func CheckNewPassword(fe *validation.FieldErrors, field, label, pw string) {
	switch {
	case !validation.MinLen(pw, MinPasswordLength):
		fe.Add(field, fmt.Sprintf("%s must be at least %d characters", label, MinPasswordLength))
	case len(pw) > MaxPasswordBytes:
		fe.Add(field, fmt.Sprintf("%s must be at most %d bytes", label, MaxPasswordBytes))
	}
}

// UpdateUser is a partial profile update; nil fields are left unchanged.
type UpdateUser struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// Empty reports whether u changes nothing.
func (u UpdateUser) Empty() bool {
	return u.Name == nil && u.Bio == nil && u.Avatar == nil
}

// Validate runs the field rules for every field present in u.
func (u UpdateUser) Validate() error {
	var fe validation.FieldErrors
	if u.Name != nil {
		checkName(&fe, *u.Name)
	}
	if u.Bio != nil && !validation.MaxLen(*u.Bio, MaxBioLen) {
		fe.Add("bio", "Bio too long")
	}
	if u.Avatar != nil && *u.Avatar != "" && !validation.URL(*u.Avatar) {
		fe.Add("avatar", "Avatar must be a valid URL")
	}
	return fe.Err()
}

// Apply returns usr with the fields present in u copied over it.
func (u UpdateUser) Apply(usr User) User {
	if u.Name != nil {
		usr.Name = *u.Name
	}
	if u.Bio != nil {
		usr.Bio = *u.Bio
	}
	if u.Avatar != nil {
		usr.Avatar = *u.Avatar
	}
	return usr
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkName(fe *validation.FieldErrors, name string) {
	switch {
	case !validation.NonBlank(name):
		fe.Add("name", "Name is required")
	case !validation.MaxLen(strings.TrimSpace(name), MaxNameLen):
		fe.Add("name", "Name must be at most 100 characters")
	}
}
