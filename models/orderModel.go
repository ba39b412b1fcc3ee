package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	CustomerID  uint        `json:"customerId" gorm:"index"`
	Products    []OrderItem `json:"products" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount float64     `json:"totalAmount"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"totalCost"`
}
