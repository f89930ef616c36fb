package models

import (
	"math"
	"strings"
	"time"
)

// Product represents a product in the catalog.
type Product struct {
	ID          int64     `json:"product_id" gorm:"column:product_id;primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Price       Price     `json:"price" gorm:"type:decimal(10,2);not null;check:ck_products_price_positive,price >= 0"`
	Stock       int       `json:"stock" gorm:"not null;default:0;check:ck_products_stock_non_negative,stock >= 0"`
	ImagenURL   *string   `json:"imagen_url" gorm:"column:imagen_url;type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CategoryID  int64     `json:"category_id" gorm:"not null;index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Product) TableName() string {
	return "products"
}

// ProductInput is the body of create and full-replace requests. Stock and
// the active flag are not part of it: they change only through their own
// operations.
type ProductInput struct {
	Name        string  `json:"name" validate:"notblank,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       Price   `json:"price" validate:"gt=0,lt=100000000"`
	ImagenURL   *string `json:"imagen_url" validate:"omitempty,http_url,max=500"`
	CategoryID  int64   `json:"category_id" validate:"gt=0"`
}

// Normalize trims text fields and rounds the price.
func (in *ProductInput) Normalize() {
	in.Name = trim(in.Name)
	in.Description = trimPtr(in.Description)
	in.ImagenURL = trimPtr(in.ImagenURL)
	in.Price = in.Price.Normalized()
}

// Apply overwrites every mutable attribute of p with the input.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.ImagenURL = in.ImagenURL
	p.CategoryID = in.CategoryID
}

// ProductPatch is the body of partial update requests. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *Price  `json:"price" validate:"omitempty,gt=0,lt=100000000"`
	ImagenURL   *string `json:"imagen_url" validate:"omitempty,http_url,max=500"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
}

func (in *ProductPatch) Normalize() {
	in.Name = trimPtr(in.Name)
	in.Description = trimPtr(in.Description)
	in.ImagenURL = trimPtr(in.ImagenURL)
	if in.Price != nil {
		p := in.Price.Normalized()
		in.Price = &p
	}
}

// Empty reports whether no field was provided.
func (in ProductPatch) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil &&
		in.ImagenURL == nil && in.CategoryID == nil
}

// Apply copies the provided fields onto p.
func (in ProductPatch) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ImagenURL != nil {
		p.ImagenURL = in.ImagenURL
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
}

// MaxStock is the largest stock level a product can hold. It matches the
// INTEGER stock column.
const MaxStock = math.MaxInt32

// StockAdjustment is the body of a stock increment request.
type StockAdjustment struct {
	Quantity int `json:"quantity" validate:"gt=0,lte=2147483647"`
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
