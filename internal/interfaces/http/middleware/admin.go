package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/shared/constants"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/utils"
)

type AdminConsolePolicy interface {
	CanAccessAdminConsole(actor permission.Actor) bool
}

// RequireAdminConsole must run after RequireAuth.
func RequireAdminConsole(policy AdminConsolePolicy, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.IsZero() {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}

		if !policy.CanAccessAdminConsole(actor) {
			log.Warnw("admin console access denied", "user_id", actor.ID, "role", actor.Role)
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
