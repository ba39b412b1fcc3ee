package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	PurposeVerifyEmail     = "verify-email"
	PurposeSendCodeToEmail = "send-code-to-email"
)

// DefaultProfileImg is the gravatar placeholder assigned to new accounts.
const DefaultProfileImg = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

type User struct {
	gorm.Model
	FullName        string `json:"fullName"`
	Email           string `json:"email" gorm:"uniqueIndex;size:191"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Password        string `json:"-"`
	ProfileImg      string `json:"profileImg"`
	Role            string `json:"role"`
	AuthToken       string `json:"-" gorm:"index"`
	AuthPurpose     string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ProfileImg == "" {
		u.ProfileImg = DefaultProfileImg
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
