package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trovi/trovi-api/models"
	"github.com/trovi/trovi-api/storage"
	"github.com/trovi/trovi-api/utils"
)

const (
	msgNoProductsFound  = "no products found"
	msgNoProductFound   = "no product found"
	msgInvalidProductID = "Invalid product ID"
	msgNotAValidUser    = "not a valid user"
	msgUserDeleted      = "user deleted successfully!"
	msgNoActivityLogged = "no activity logged in"
)

const recentActivitiesLimit = 10

// SharedController serves the catalog reads, product likes, profile
// management and the recent-activity feed available to both roles.
type SharedController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Activity *utils.ActivityLogger

	validate *validator.Validate
}

func NewSharedController(db *gorm.DB, store storage.Storage, activity *utils.ActivityLogger) *SharedController {
	return &SharedController{
		DB:       db,
		Storage:  store,
		Activity: activity,
		validate: validator.New(),
	}
}

// GetAllProducts pages through the catalog using the path params.
func (s *SharedController) GetAllProducts(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.Param("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.Param("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var products []models.Product
	result := s.DB.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, result.Error)
		return
	}

	if len(products) == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgNoProductsFound)
		return
	}

	var count int64
	s.DB.Model(&models.Product{}).Count(&count)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetProduct fetches one product. A non-numeric id answers 500, not 400:
// upstream treated an unparseable id as an internal failure and callers
// depend on that shape.
func (s *SharedController) GetProduct(ctx *gin.Context) {
	// The first path segment is shared with the paginated list route, so the
	// wildcard keeps its ":page" name here.
	id, err := strconv.Atoi(ctx.Param("page"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var product models.Product
	if err := s.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNoProductFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

// ProdLikes applies a signed like increment to a product and echoes the
// updated document with a 202.
func (s *SharedController) ProdLikes(ctx *gin.Context) {
	var body struct {
		ID   uint `json:"id"`
		Like int  `json:"like"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.ID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidProductID)
		return
	}

	result := s.DB.Model(&models.Product{}).
		Where("id = ?", body.ID).
		UpdateColumn("prod_likes", gorm.Expr("prod_likes + ?", body.Like))
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "No product found")
		return
	}

	var product models.Product
	if err := s.DB.First(&product, body.ID).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	sendJSONResponse(ctx, http.StatusAccepted, gin.H{"status": true, "product": product})
}

// GetProfile returns the acting user's public profile fields only; password
// and verification state stay out of the response.
func (s *SharedController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"profile": gin.H{
			"id":         user.ID,
			"fullName":   user.FullName,
			"email":      user.Email,
			"profileImg": user.ProfileImg,
			"role":       user.Role,
		},
	})
}

type profileUpdate struct {
	Email    string `validate:"omitempty,email"`
	FullName string `validate:"omitempty"`
}

// UpdateProfile accepts a partial {email, fullName} multipart form plus an
// optional replacement profile image. Schema failures are echoed back in a
// 200 body rather than rejected with an error status; that is the upstream
// contract, preserved here.
func (s *SharedController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	update := profileUpdate{
		Email:    ctx.PostForm("email"),
		FullName: ctx.PostForm("fullName"),
	}

	if err := s.validate.Struct(update); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNotAValidUser)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	updates := map[string]any{}
	if update.Email != "" {
		updates["email"] = update.Email
	}
	if update.FullName != "" {
		updates["full_name"] = update.FullName
	}

	if file, err := ctx.FormFile("profileImg"); err == nil {
		profileImg, uploadErr := s.Storage.Upload(ctx.Request.Context(), file)
		if uploadErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, uploadErr)
			return
		}
		updates["profile_img"] = profileImg
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
			return
		}
		// Re-read so the response carries the updated document.
		if err := s.DB.First(&user, userID).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
			return
		}
	}

	go s.Activity.Log(userID, models.ActivityUpdated, user.ID, models.ItemTypeUser)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"updatedProfile": gin.H{
			"id":         user.ID,
			"fullName":   user.FullName,
			"email":      user.Email,
			"profileImg": user.ProfileImg,
			"role":       user.Role,
		},
	})
}

// DeleteProfile removes the user and their stored profile image. The default
// gravatar placeholder is never deleted from storage.
func (s *SharedController) DeleteProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNotAValidUser)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if user.ProfileImg != "" && user.ProfileImg != models.DefaultProfileImg {
		if err := s.Storage.Delete(ctx.Request.Context(), user.ProfileImg); err != nil {
			zap.L().Error("Failed to delete profile image", zap.Error(err), zap.Uint("userId", user.ID))
		}
	}

	if err := s.DB.Unscoped().Delete(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	go s.Activity.Log(userID, models.ActivityDeleted, user.ID, models.ItemTypeUser)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgUserDeleted})
}

// GetRecentActivities returns the acting user's last ten audit entries,
// newest first.
func (s *SharedController) GetRecentActivities(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var activities []models.UserActivity
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(recentActivitiesLimit).
		Find(&activities).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if len(activities) == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgNoActivityLogged)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"activities": activities})
}
