package authapimodels

import (
	apimodels "office-admin-backend/models/api"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}
