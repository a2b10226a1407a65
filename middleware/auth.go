package middleware

import (
	"net/http"
	"strings"

	"rentflow/models"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ctxUserID = "userID"
	ctxRole   = "role"
	ctxToken  = "token"
)

// JWTAuthMiddleware validates the bearer token and rejects revoked ones.
// revoked may be nil, in which case logout only discards the token client side.
func JWTAuthMiddleware(issuer *utils.TokenIssuer, revoked utils.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, utils.NewUnauthorized(utils.MsgUnauthorized))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil || claims.Subject == "" {
			utils.RespondError(c, utils.NewUnauthorized(utils.MsgUnauthorized))
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), utils.HashToken(tokenString))
			if err != nil {
				// Fail open on a Redis outage.
				zap.L().Warn("revocation check failed", zap.Error(err))
			} else if isRevoked {
				utils.RespondError(c, utils.NewUnauthorized(utils.MsgUnauthorized))
				return
			}
		}

		SetCurrentUser(c, claims.Subject, models.Role(claims.Role))
		c.Set(ctxToken, tokenString)
		c.Next()
	}
}

// RequireAdmin must run after JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := CurrentUser(c); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: utils.MsgForbidden})
			return
		}
		c.Next()
	}
}

// SetCurrentUser records the authenticated user on c.
func SetCurrentUser(c *gin.Context, id string, role models.Role) {
	c.Set(ctxUserID, id)
	c.Set(ctxRole, role)
}

// CurrentUser returns the authenticated user's role and id.
func CurrentUser(c *gin.Context) (models.Role, string) {
	role, _ := c.Get(ctxRole)
	r, _ := role.(models.Role)
	return r, c.GetString(ctxUserID)
}

// BearerToken returns the raw token of the authenticated request.
func BearerToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
