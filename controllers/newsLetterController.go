package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trovi/trovi-api/models"
)

const (
	msgFieldRequired     = "field required"
	msgNewsLetterCreated = "news letter created"
	msgAlreadySubscribed = "email already subscribed"
)

type NewsLetterController struct {
	DB *gorm.DB
}

func NewNewsLetterController(db *gorm.DB) *NewsLetterController {
	return &NewsLetterController{DB: db}
}

// CreateNewsLetter subscribes an email to the newsletter list. Addresses are
// lowercased and trimmed before storing, and duplicates are rejected.
func (n *NewsLetterController) CreateNewsLetter(ctx *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Email == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgFieldRequired)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var count int64
	if err := n.DB.Model(&models.NewsLetter{}).Where("email = ?", email).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAlreadySubscribed)
		return
	}

	newsLetter := models.NewsLetter{Email: email}
	if err := n.DB.Create(&newsLetter).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgNewsLetterCreated})
}
