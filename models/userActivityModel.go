package models

import "gorm.io/gorm"

const (
	ActivityCreated    = "created"
	ActivityUpdated    = "updated"
	ActivityDeleted    = "deleted"
	ActivitySaved      = "saved"
	ActivityReviewed   = "reviewed"
	ActivitySubscribed = "subscribed"
)

const (
	ItemTypeOrder      = "Order"
	ItemTypeProduct    = "Product"
	ItemTypeToken      = "Token"
	ItemTypeUser       = "User"
	ItemTypeNewsLetter = "NewsLetter"
)

// UserActivity is an append-only audit record. The application never updates
// or deletes rows in this table.
type UserActivity struct {
	gorm.Model
	UserID       uint   `json:"userId" gorm:"index"`
	ActivityType string `json:"activityType"`
	ItemID       uint   `json:"itemId"`
	ItemType     string `json:"itemType"`
}
