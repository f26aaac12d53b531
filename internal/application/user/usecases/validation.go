package usecases

import (
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/utils"
)

func init() {
	utils.RegisterValidation("user_role", func(value string) bool {
		return authorization.UserRole(value).IsValid()
	})
}
