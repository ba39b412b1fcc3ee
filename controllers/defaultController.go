package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Trovi API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/v1/auth/register" - Create user account
- GET "/v1/auth/verify-email/:token" - Verify user email
- POST "/v1/auth/login" - Access user account
- POST "/v1/auth/forgot-password" - Request a password reset code
- POST "/v1/auth/confirm-reset-password-code" - Confirm the emailed reset code
- POST "/v1/auth/reset-password" - Reset user password

ADMIN
- POST "/v1/admins" - Create new product
- PATCH "/v1/admins/:id" - Update product
- DELETE "/v1/admins/:id" - Delete product

ORDERS
- POST "/v1/orders" - Create a new order
- GET "/v1/orders" - Get your orders

PRODUCT
- GET "/v1/product/:page/:limit" - Get products (paginated)
- GET "/v1/product/:id" - Get product by ID
- POST "/v1/product/likes" - Like or unlike a product
- GET "/v1/product/profile" - Get your profile
- PATCH "/v1/product/profile" - Update your profile
- DELETE "/v1/product/profile" - Delete your profile
- GET "/v1/product/recent-activities" - Get your last 10 activities

NEWSLETTER
- POST "/v1/newsletter" - Subscribe to the newsletter`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
