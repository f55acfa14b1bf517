package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillup-labs/skillup/utils"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// AuthRequired rejects requests without a valid, non-revoked bearer JWT and
// places the token's identity into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, code, err := bearerToken(ctx)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, code, err.Error())
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// bearerToken extracts the token from the Authorization header, returning the
// error code to answer with when the header is malformed.
func bearerToken(ctx *gin.Context) (string, int, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", 40101, errors.New("authorization header missing")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", 40102, errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", 40103, errors.New("empty bearer token")
	}
	return token, 0, nil
}
