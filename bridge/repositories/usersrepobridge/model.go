package usersrepobridge

import (
	"strings"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

// User is the public wire shape of an account. It never carries the
// password hash.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	var fe validation.FieldErrors
	switch {
	case !validation.NonBlank(in.Name):
		fe.Add("name", "Name is required")
	case !validation.MaxLen(strings.TrimSpace(in.Name), usersrepo.MaxNameLen):
		fe.Add("name", "Name must be at most 100 characters")
	}
	if !validation.Email(usersrepo.NormalizeEmail(in.Email)) {
		fe.Add("email", "Valid email is required")
	}
	usersrepo.CheckNewPassword(&fe, "password", "Password", in.Password)
	return fe.Err()
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	var fe validation.FieldErrors
	if !validation.Email(usersrepo.NormalizeEmail(in.Email)) {
		fe.Add("email", "Valid email is required")
	}
	if in.Password == "" {
		fe.Add("password", "Password is required")
	}
	return fe.Err()
}

// UpdateProfileInput is a partial update; omitted fields are left alone.
type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (in UpdateProfileInput) Validate() error {
	var fe validation.FieldErrors
	if in.Name != nil {
		switch {
		case !validation.NonBlank(*in.Name):
			fe.Add("name", "Name cannot be empty")
		case !validation.MaxLen(strings.TrimSpace(*in.Name), usersrepo.MaxNameLen):
			fe.Add("name", "Name must be at most 100 characters")
		}
	}
	if in.Bio != nil && !validation.MaxLen(*in.Bio, usersrepo.MaxBioLen) {
		fe.Add("bio", "Bio too long")
	}
	if in.Avatar != nil && *in.Avatar != "" && !validation.URL(*in.Avatar) {
		fe.Add("avatar", "Avatar must be a valid URL")
	}
	return fe.Err()
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (in ChangePasswordInput) Validate() error {
	var fe validation.FieldErrors
	if in.CurrentPassword == "" {
		fe.Add("currentPassword", "Current password required")
	}
	usersrepo.CheckNewPassword(&fe, "newPassword", "New password", in.NewPassword)
	return fe.Err()
}
