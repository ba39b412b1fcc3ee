package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is where VerifyAuth stores the decoded token claims on the
// request context.
const ClaimsKey = "userDetails"

func VerifyAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided"})
			return
		}

		if !strings.EqualFold(parts[0], "bearer") {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid auth strategy"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// A malformed or expired token surfaces as a 500 with the
			// verification error echoed, matching the upstream behavior where
			// this failure was never caught and turned into a clean 401.
			errMsg := "invalid token"
			if err != nil {
				errMsg = err.Error()
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "internal server error",
				"error":   errMsg,
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "you are not authorized"})
			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}
