package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/trovi/trovi-api/middlewares"
)

// currentUserID pulls the acting user's id out of the claims attached by the
// auth middleware. Numeric JSON claims decode as float64.
func currentUserID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Get(middlewares.ClaimsKey)
	if !exists {
		return 0, false
	}

	claims, ok := raw.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	id, ok := claims["userId"].(float64)
	if !ok {
		return 0, false
	}

	return uint(id), true
}
