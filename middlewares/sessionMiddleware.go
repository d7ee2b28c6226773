package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/utils"
)

// TokenLookup resolves an intake token to the worker's username.
type TokenLookup func(token string) (username string, exists bool, err error)

// RedisTokenLookup reads "Token:<token>" as written by the intake login.
func RedisTokenLookup(token string) (string, bool, error) {
	return config.GetRedisValue("Token:" + token)
}

// TokenRevoker forgets an intake token.
type TokenRevoker func(token string) error

func RedisTokenRevoker(token string) error {
	return config.RemoveRedisKey("Token:" + token)
}

// SessionMiddleware resolves the "token" header. The token is kept on the
// context and forwarded to FERB on every call made for the request.
func SessionMiddleware(lookup TokenLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}
		username, exists, err := lookup(token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
