package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trovi/trovi-api/controllers"
	"github.com/trovi/trovi-api/middlewares"
	"github.com/trovi/trovi-api/models"
)

func SharedRoutes(server *gin.Engine, shared *controllers.SharedController, jwtSecret string) {
	group := server.Group("/v1/product")
	group.Use(middlewares.VerifyAuth(jwtSecret))
	group.Use(middlewares.RolesAllowed(models.RoleCustomer, models.RoleAdmin))
	{
		group.GET("/profile", shared.GetProfile)
		group.PATCH("/profile", shared.UpdateProfile)
		group.DELETE("/profile", shared.DeleteProfile)
		group.GET("/recent-activities", shared.GetRecentActivities)
		group.POST("/likes", shared.ProdLikes)

		// Both wildcard routes share the first segment, so the param name
		// must match: GetProduct reads its id from ":page".
		group.GET("/:page", shared.GetProduct)
		group.GET("/:page/:limit", shared.GetAllProducts)
	}
}
