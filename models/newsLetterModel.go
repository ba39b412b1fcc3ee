package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsLetter struct {
	gorm.Model
	Email         string    `json:"email" gorm:"uniqueIndex;size:191"`
	SubscribeDate time.Time `json:"subscribeDate"`
}

func (n *NewsLetter) BeforeCreate(tx *gorm.DB) error {
	if n.SubscribeDate.IsZero() {
		n.SubscribeDate = time.Now()
	}
	return nil
}
