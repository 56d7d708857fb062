package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

type SaveProfileInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone model.Option[string]
	// Role is honoured only when the profile is first created.
	Role model.Role
}
