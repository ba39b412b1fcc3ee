package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	ProdName    string  `json:"prodName"`
	ProdPrice   float64 `json:"prodPrice"`
	ProdSnippet string  `json:"prodSnippet"`
	ProdDetails string  `json:"prodDetails"`
	ProdImg     string  `json:"prodImg"`
	ProdLikes   int     `json:"prodLikes"`
	UserID      *uint   `json:"userId"`
}
