package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the admin payload for adding a catalog item.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"imageURL"`
	Stock       int             `json:"stock" binding:"min=0"`
	Featured    bool            `json:"featured"`
}

// UpdateProductRequest carries partial product updates.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageURL"`
	Stock       *int             `json:"stock"`
	Featured    *bool            `json:"featured"`
}

// ListProductsParams defines query parameters for catalog listing.
type ListProductsParams struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}
