package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trovi/trovi-api/models"
	"github.com/trovi/trovi-api/storage"
	"github.com/trovi/trovi-api/utils"
)

const (
	msgNoFile            = "this request doesn't have a file"
	msgProductCreated    = "product created successfully!"
	msgProductUpdated    = "product updated successfully!"
	msgProductDeleted    = "product deleted successfully!"
	msgNoProductToUpdate = "no product to update"
	msgProductNotFound   = "product not found"
	msgInvalidPrice      = "invalid product price"
)

// AdminController owns the product catalog mutations, all gated to the admin
// role by the routes.
type AdminController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Activity *utils.ActivityLogger
}

func NewAdminController(db *gorm.DB, store storage.Storage, activity *utils.ActivityLogger) *AdminController {
	return &AdminController{DB: db, Storage: store, Activity: activity}
}

// CreateProduct accepts a multipart form with the four text fields plus the
// product image. All of them are required.
func (a *AdminController) CreateProduct(ctx *gin.Context) {
	prodName := ctx.PostForm("prodName")
	prodPrice := ctx.PostForm("prodPrice")
	prodSnippet := ctx.PostForm("prodSnippet")
	prodDetails := ctx.PostForm("prodDetails")

	if prodName == "" || prodPrice == "" || prodSnippet == "" || prodDetails == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInputFieldRequired)
		return
	}

	price, err := strconv.ParseFloat(prodPrice, 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidPrice)
		return
	}

	file, err := ctx.FormFile("prodImg")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgNoFile)
		return
	}

	prodImg, err := a.Storage.Upload(ctx.Request.Context(), file)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	product := models.Product{
		ProdName:    prodName,
		ProdPrice:   price,
		ProdSnippet: prodSnippet,
		ProdDetails: prodDetails,
		ProdImg:     prodImg,
	}
	if err := a.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if userID, ok := currentUserID(ctx); ok {
		go a.Activity.Log(userID, models.ActivityCreated, product.ID, models.ItemTypeProduct)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgProductCreated,
		"product": product,
	})
}

// UpdateProduct applies a partial update: absent form fields leave the stored
// values untouched, and a new image, when present, replaces the old URL.
func (a *AdminController) UpdateProduct(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgNoProductToUpdate)
		return
	}

	var product models.Product
	if err := a.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNoProductToUpdate)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	updates := map[string]any{}
	if prodName := ctx.PostForm("prodName"); prodName != "" {
		updates["prod_name"] = prodName
	}
	if prodPrice := ctx.PostForm("prodPrice"); prodPrice != "" {
		price, err := strconv.ParseFloat(prodPrice, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidPrice)
			return
		}
		updates["prod_price"] = price
	}
	if prodSnippet := ctx.PostForm("prodSnippet"); prodSnippet != "" {
		updates["prod_snippet"] = prodSnippet
	}
	if prodDetails := ctx.PostForm("prodDetails"); prodDetails != "" {
		updates["prod_details"] = prodDetails
	}

	if file, err := ctx.FormFile("prodImg"); err == nil {
		prodImg, uploadErr := a.Storage.Upload(ctx.Request.Context(), file)
		if uploadErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, uploadErr)
			return
		}
		updates["prod_img"] = prodImg
	}

	if len(updates) > 0 {
		if err := a.DB.Model(&product).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
			return
		}
		// Re-read so the response carries the updated document.
		if err := a.DB.First(&product, product.ID).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
			return
		}
	}

	if userID, ok := currentUserID(ctx); ok {
		go a.Activity.Log(userID, models.ActivityUpdated, product.ID, models.ItemTypeProduct)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":        msgProductUpdated,
		"updatedProduct": product,
	})
}

// DeleteProduct removes the product and, when one is stored, its image from
// object storage. A storage failure is logged but does not block deletion.
func (a *AdminController) DeleteProduct(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		return
	}

	var product models.Product
	if err := a.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if product.ProdImg != "" {
		if err := a.Storage.Delete(ctx.Request.Context(), product.ProdImg); err != nil {
			zap.L().Error("Failed to delete product image", zap.Error(err), zap.Uint("productId", product.ID))
		}
	}

	if err := a.DB.Unscoped().Delete(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if userID, ok := currentUserID(ctx); ok {
		go a.Activity.Log(userID, models.ActivityDeleted, product.ID, models.ItemTypeProduct)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProductDeleted})
}
