package domain

import (
	"math"
	"time"
)

// CurrencyPKR is the only currency the catalogue accepts.
const CurrencyPKR = "PKR"

// Product is a catalogue entry as exchanged with the products API.
type Product struct {
	ID              string     `json:"id" validate:"required,uuid"`
	SKU             string     `json:"sku" validate:"required,min=6,max=100,sku"`
	Name            string     `json:"name" validate:"required,min=3,max=100"`
	Description     string     `json:"description" validate:"required,min=6,max=100"`
	Category        string     `json:"category" validate:"required,min=3,max=100"`
	Brand           string     `json:"brand" validate:"required,min=3,max=100"`
	Price           float64    `json:"price" validate:"gte=0"`
	Currency        string     `json:"currency" validate:"omitempty,eq=PKR"`
	DiscountPercent int        `json:"discount_percent" validate:"gte=0,lte=90"`
	Stock           int        `json:"stock" validate:"gte=0"`
	IsActive        bool       `json:"is_active"`
	Rating          float64    `json:"rating" validate:"gte=0,lte=5"`
	Tags            []string   `json:"tags" validate:"omitempty,max=10"`
	ImageURLs       []string   `json:"image_urls" validate:"max=1,dive,url"`
	Dimensions      Dimensions `json:"dimensions_cm"`
	Seller          Seller     `json:"seller"`
	CreatedAt       time.Time  `json:"created_at"`

	// Computed by the server; ignored when sent.
	FinalPrice    float64 `json:"final_price,omitempty" validate:"-"`
	ProductVolume float64 `json:"product_volume,omitempty" validate:"-"`
}

// Dimensions are expressed in centimetres.
type Dimensions struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type Seller struct {
	SellerID      string `json:"seller_id" validate:"required,uuid"`
	SellerName    string `json:"seller_name" validate:"required,min=2,max=60"`
	SellerEmail   string `json:"seller_email" validate:"required,min=3,max=100,email"`
	SellerWebsite string `json:"seller_website" validate:"required,min=3,max=100,url"`
}

// CalcFinalPrice applies the discount and rounds to two decimals.
func (p Product) CalcFinalPrice() float64 {
	return math.Round(p.Price*(1-float64(p.DiscountPercent)/100)*100) / 100
}

func (p Product) CalcVolume() float64 {
	return p.Dimensions.Length * p.Dimensions.Width * p.Dimensions.Height
}

// ProductUpdate is a partial update; nil fields are left out of the request body.
type ProductUpdate struct {
	Name            *string           `json:"name,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Category        *string           `json:"category,omitempty"`
	Brand           *string           `json:"brand,omitempty"`
	Price           *float64          `json:"price,omitempty"`
	DiscountPercent *int              `json:"discount_percent,omitempty"`
	Stock           *int              `json:"stock,omitempty"`
	IsActive        *bool             `json:"is_active,omitempty"`
	Rating          *float64          `json:"rating,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	ImageURLs       []string          `json:"image_urls,omitempty"`
	Dimensions      *DimensionsUpdate `json:"dimensions_cm,omitempty"`
	Seller          *SellerUpdate     `json:"seller,omitempty"`
}

type DimensionsUpdate struct {
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type SellerUpdate struct {
	SellerName    *string `json:"seller_name,omitempty"`
	SellerEmail   *string `json:"seller_email,omitempty"`
	SellerWebsite *string `json:"seller_website,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil && u.Brand == nil &&
		u.Price == nil && u.DiscountPercent == nil && u.Stock == nil && u.IsActive == nil &&
		u.Rating == nil && u.Tags == nil && u.ImageURLs == nil && u.Dimensions == nil && u.Seller == nil
}

// ProductPage is the list endpoint response.
type ProductPage struct {
	Total int       `json:"total"`
	Limit int       `json:"limit"`
	Items []Product `json:"items"`
}

// DeleteResult is the delete endpoint response.
type DeleteResult struct {
	Message string `json:"message"`
}
