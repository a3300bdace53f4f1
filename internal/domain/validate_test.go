package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validProduct() Product {
	return Product{
		ID:              "0005a4ea-ce3f-4dd7-bee0-f4ccc70fea6a",
		SKU:             "XIAO-359GB-001",
		Name:            "Xiaomi Model Pro",
		Description:     "Flagship phone",
		Category:        "electronics",
		Brand:           "Xiaomi",
		Price:           2000,
		Currency:        CurrencyPKR,
		DiscountPercent: 10,
		Stock:           5,
		IsActive:        true,
		Rating:          4.5,
		Tags:            []string{"phone"},
		ImageURLs:       []string{"https://cdn.example.com/p.png"},
		Dimensions:      Dimensions{Length: 15, Width: 7, Height: 0.8},
		Seller: Seller{
			SellerID:      "550e8400-e29b-41d4-a716-446655440000",
			SellerName:    "Mi Store",
			SellerEmail:   "support@xiaomi.com",
			SellerWebsite: "https://www.xiaomi.com",
		},
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func fieldsOf(t *testing.T, err error) map[string]FieldError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	out := make(map[string]FieldError, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f
	}
	return out
}

func TestValidateProductAcceptsValidProduct(t *testing.T) {
	if err := ValidateProduct(validProduct()); err != nil {
		t.Fatalf("ValidateProduct: %v", err)
	}
}

func TestValidateProductReportsFieldRules(t *testing.T) {
	p := validProduct()
	p.Name = "ab"
	p.Price = -1
	p.Currency = "USD"
	p.Dimensions.Width = 0
	p.Seller.SellerEmail = "not-an-email"
	p.ImageURLs = []string{"https://a.example/1.png", "https://a.example/2.png"}

	fields := fieldsOf(t, ValidateProduct(p))
	for _, name := range []string{"name", "price", "currency", "dimensions_cm.width", "seller.seller_email", "image_urls"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("expected error for %s, got %#v", name, fields)
		}
	}
	if msg := fields["name"].Message; !strings.Contains(msg, "name") {
		t.Fatalf("expected translated message naming the field, got %q", msg)
	}
}

func TestValidateProductSKURules(t *testing.T) {
	cases := map[string]bool{
		"XIAO-359GB-001": true,
		"XIAO-359GB-ABC": true,
		"XIAOMI-12":      false,
		"XIAOMI0012":     false,
		"ABCDEF-0012":    false,
	}
	for sku, ok := range cases {
		p := validProduct()
		p.SKU = sku
		err := ValidateProduct(p)
		if ok && err != nil {
			t.Fatalf("sku %q: unexpected error %v", sku, err)
		}
		if !ok {
			if _, found := fieldsOf(t, err)["sku"]; !found {
				t.Fatalf("sku %q: expected sku error, got %v", sku, err)
			}
		}
	}
}

func TestValidateProductBusinessRules(t *testing.T) {
	p := validProduct()
	p.Stock = 0
	p.IsActive = true
	p.Rating = 0
	p.DiscountPercent = 5

	fields := fieldsOf(t, ValidateProduct(p))
	if f := fields["is_active"]; f.Message != "stock is 0, is_active must be false" {
		t.Fatalf("unexpected is_active error %#v", f)
	}
	if f := fields["rating"]; f.Message != "discounted product must have a rating" {
		t.Fatalf("unexpected rating error %#v", f)
	}
}

func TestCalcFinalPriceAndVolume(t *testing.T) {
	p := validProduct()
	p.Price = 1999.99
	p.DiscountPercent = 15
	if got := p.CalcFinalPrice(); got != 1699.99 {
		t.Fatalf("CalcFinalPrice = %v", got)
	}
	p.Dimensions = Dimensions{Length: 2, Width: 3, Height: 4}
	if got := p.CalcVolume(); got != 24 {
		t.Fatalf("CalcVolume = %v", got)
	}
}

func TestProductUpdateIsEmpty(t *testing.T) {
	if !(ProductUpdate{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}
	stock := 3
	if (ProductUpdate{Stock: &stock}).IsEmpty() {
		t.Fatalf("update with stock should not be empty")
	}
}
