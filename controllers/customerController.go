package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trovi/trovi-api/models"
	"github.com/trovi/trovi-api/utils"
)

const (
	msgOrderCreated  = "order created"
	msgNoOrdersFound = "no orders found"
)

// CustomerController handles order placement and retrieval for the
// authenticated customer.
type CustomerController struct {
	DB       *gorm.DB
	Activity *utils.ActivityLogger
}

func NewCustomerController(db *gorm.DB, activity *utils.ActivityLogger) *CustomerController {
	return &CustomerController{DB: db, Activity: activity}
}

type orderLine struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"totalCost"`
}

// CreateOrder persists an order for the acting customer. The total amount is
// the sum of the submitted line totals, computed once at creation and never
// recomputed.
func (c *CustomerController) CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		Products []orderLine `json:"products"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || len(body.Products) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInputFieldRequired)
		return
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(body.Products))
	for _, line := range body.Products {
		if line.ProductID == 0 || line.Quantity == 0 || line.TotalCost == 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInputFieldRequired)
			return
		}
		totalAmount += line.TotalCost
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			TotalCost: line.TotalCost,
		})
	}

	order := models.Order{
		CustomerID:  userID,
		Products:    items,
		TotalAmount: totalAmount,
	}
	if err := c.DB.Create(&order).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	go c.Activity.Log(userID, models.ActivityCreated, order.ID, models.ItemTypeOrder)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgOrderCreated})
}

// GetAllOrders lists the acting customer's orders with their line items.
func (c *CustomerController) GetAllOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	err := c.DB.Preload("Products").Where("customer_id = ?", userID).Find(&orders).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	if len(orders) == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgNoOrdersFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}
