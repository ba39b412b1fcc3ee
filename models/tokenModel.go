package models

import "gorm.io/gorm"

// Token is an ephemeral password-reset record. A user may have several
// outstanding tokens at once, each forgot-password request mints a new one.
type Token struct {
	gorm.Model
	UserID            uint   `json:"userId" gorm:"index"`
	Token             string `json:"token" gorm:"index"`
	AuthPurpose       string `json:"authPurpose"`
	ResetPasswordCode string `json:"-"`
}
