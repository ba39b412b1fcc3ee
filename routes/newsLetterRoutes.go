package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trovi/trovi-api/controllers"
)

func NewsLetterRoutes(server *gin.Engine, newsLetter *controllers.NewsLetterController) {
	server.POST("/v1/newsletter", newsLetter.CreateNewsLetter)
}
