package middleware

import (
	"net/http"
	"strings"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token and loads the user into the
// request context. The token is taken from the Authorization header or,
// for browser clients, the auth_token cookie.
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// Tokens outlive account changes, so confirm the user still exists.
		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)

		c.Next()
	}
}
