// Package catalog defines the entity types served by the remote inventory
// backend together with the defensive constructors that coerce its loosely
// shaped JSON into typed records.
package catalog

import "time"

// Product is a catalog product together with its subcategory lines.
type Product struct {
	ID            string
	Name          string
	SKU           string
	CategoryID    string
	CategoryName  string
	BrandID       string
	BrandName     string
	Price         float64
	Cost          float64
	Quantity      float64
	Subcategories []Subcategory
	Deleted       bool
	CreatedAt     time.Time
}

// Subcategory is a product subcategory line with its own stock figures.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       string
	Quantity   float64
	Price      float64
	ExpiryDate time.Time
	Deleted    bool
}

// ProductFromRaw builds a Product from a raw backend record. Missing or
// malformed fields default to zero values.
func ProductFromRaw(raw Raw) Product {
	subs := raw.Objects("subcategories", "product_subcategories", "productSubcategories")
	p := Product{
		ID:            raw.Str("id", "_id", "product_id"),
		Name:          raw.Str("name", "product_name"),
		SKU:           raw.Str("sku", "code"),
		CategoryID:    raw.Str("category_id", "categoryId"),
		CategoryName:  raw.Str("category_name", "category"),
		BrandID:       raw.Str("brand_id", "brandId"),
		BrandName:     raw.Str("brand_name", "brand"),
		Price:         raw.Float("price", "selling_price"),
		Cost:          raw.Float("cost", "cost_price"),
		Quantity:      raw.Float("quantity", "stock_quantity", "qty"),
		Subcategories: make([]Subcategory, 0, len(subs)),
		Deleted:       raw.Bool("deleted"),
		CreatedAt:     raw.Time("created_at", "createdAt"),
	}
	for _, s := range subs {
		p.Subcategories = append(p.Subcategories, SubcategoryFromRaw(s))
	}
	return p
}

// SubcategoryFromRaw builds a Subcategory from a raw backend record.
func SubcategoryFromRaw(raw Raw) Subcategory {
	return Subcategory{
		ID:         raw.Str("id", "_id", "subcategory_id"),
		CategoryID: raw.Str("category_id", "categoryId"),
		Name:       raw.Str("name", "subcategory_name"),
		Quantity:   raw.Float("quantity", "qty"),
		Price:      raw.Float("price"),
		ExpiryDate: raw.Time("expiry_date", "expiryDate"),
		Deleted:    raw.Bool("deleted"),
	}
}
