package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trovi/trovi-api/controllers"
	"github.com/trovi/trovi-api/middlewares"
	"github.com/trovi/trovi-api/models"
)

func AdminRoutes(server *gin.Engine, admin *controllers.AdminController, jwtSecret string) {
	group := server.Group("/v1/admins")
	group.Use(middlewares.VerifyAuth(jwtSecret))
	group.Use(middlewares.RolesAllowed(models.RoleAdmin))
	{
		group.POST("", admin.CreateProduct)
		group.PATCH("/:id", admin.UpdateProduct)
		group.DELETE("/:id", admin.DeleteProduct)
	}
}
