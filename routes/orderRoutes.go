package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trovi/trovi-api/controllers"
	"github.com/trovi/trovi-api/middlewares"
	"github.com/trovi/trovi-api/models"
)

func OrderRoutes(server *gin.Engine, customer *controllers.CustomerController, jwtSecret string) {
	group := server.Group("/v1/orders")
	group.Use(middlewares.VerifyAuth(jwtSecret))
	group.Use(middlewares.RolesAllowed(models.RoleCustomer))
	{
		group.POST("", customer.CreateOrder)
		group.GET("", customer.GetAllOrders)
	}
}
