package usersrepobridge

import (
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

func MarshalToBridge(usr usersrepo.User) User {
	return User{
		ID:        usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		Bio:       usr.Bio,
		Avatar:    usr.Avatar,
		CreatedAt: validation.FormatTime(usr.CreatedAt),
		UpdatedAt: validation.FormatTime(usr.UpdatedAt),
	}
}

func MarshalRegisterToRepository(in RegisterInput) usersrepo.CreateUser {
	return usersrepo.CreateUser{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
}

func MarshalUpdateToRepository(in UpdateProfileInput) usersrepo.UpdateUser {
	return usersrepo.UpdateUser{
		Name:   in.Name,
		Bio:    in.Bio,
		Avatar: in.Avatar,
	}
}
