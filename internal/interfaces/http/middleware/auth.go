package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/user"
	"ticketapp/internal/infrastructure/auth"
	"ticketapp/internal/shared/constants"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/utils"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserLoader reloads the account named by a token so role changes and
// deletions take effect on the next request.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*user.User, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserLoader
	logger logger.Interface
}

func NewAuthMiddleware(tokens TokenVerifier, users UserLoader, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		u, err := m.users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Errorw("failed to load token user", "user_id", claims.UserID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
			return
		}
		if u == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return
		}

		actor := permission.ActorFromUser(u)
		c.Request = c.Request.WithContext(permission.WithActor(c.Request.Context(), actor))
		c.Set(constants.ContextKeyUserID, u.ID)
		c.Set(constants.ContextKeyUserRole, u.Role.String())

		c.Next()
	}
}

// CurrentActor returns the actor stored by RequireAuth, or the zero actor.
func CurrentActor(c *gin.Context) permission.Actor {
	actor, _ := permission.ActorFromContext(c.Request.Context())
	return actor
}
