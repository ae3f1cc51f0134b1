package catalog

import "time"

// Brand is a product brand.
type Brand struct {
	ID      string
	Name    string
	Deleted bool
}

// BrandFromRaw builds a Brand from a raw backend record.
func BrandFromRaw(raw Raw) Brand {
	return Brand{
		ID:      raw.Str("id", "_id", "brand_id"),
		Name:    raw.Str("name", "brand_name"),
		Deleted: raw.Bool("deleted"),
	}
}

// Category is a product category.
type Category struct {
	ID      string
	Name    string
	Deleted bool
}

// CategoryFromRaw builds a Category from a raw backend record.
func CategoryFromRaw(raw Raw) Category {
	return Category{
		ID:      raw.Str("id", "_id", "category_id"),
		Name:    raw.Str("name", "category_name"),
		Deleted: raw.Bool("deleted"),
	}
}

// StockBatch is a received stock batch tracked per product.
type StockBatch struct {
	ID           string
	ProductID    string
	ProductName  string
	BatchNumber  string
	Quantity     float64
	UnitCost     float64
	SellingPrice float64
	ExpiryDate   time.Time
	ReceivedAt   time.Time
	Deleted      bool
}

// StockBatchFromRaw builds a StockBatch from a raw backend record.
func StockBatchFromRaw(raw Raw) StockBatch {
	return StockBatch{
		ID:           raw.Str("id", "_id", "batch_id"),
		ProductID:    raw.Str("product_id", "productId"),
		ProductName:  raw.Str("product_name", "product"),
		BatchNumber:  raw.Str("batch_number", "batch_no"),
		Quantity:     raw.Float("quantity", "qty"),
		UnitCost:     raw.Float("unit_cost", "cost"),
		SellingPrice: raw.Float("selling_price", "price"),
		ExpiryDate:   raw.Time("expiry_date", "expiryDate"),
		ReceivedAt:   raw.Time("received_at", "receivedAt", "created_at"),
		Deleted:      raw.Bool("deleted"),
	}
}

// Supplier is a goods supplier.
type Supplier struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
	Deleted bool
}

// SupplierFromRaw builds a Supplier from a raw backend record.
func SupplierFromRaw(raw Raw) Supplier {
	return Supplier{
		ID:      raw.Str("id", "_id", "supplier_id"),
		Name:    raw.Str("name", "supplier_name"),
		Phone:   raw.Str("phone", "phone_number"),
		Email:   raw.Str("email"),
		Address: raw.Str("address"),
		Deleted: raw.Bool("deleted"),
	}
}

// GoodsReceipt is a goods-received note reconciling a supplier delivery.
type GoodsReceipt struct {
	ID           string
	Number       string
	SupplierID   string
	SupplierName string
	TotalValue   float64
	ReceivedAt   time.Time
	Lines        []GoodsReceiptLine
	Deleted      bool
}

// GoodsReceiptLine is a single received item on a goods-received note.
type GoodsReceiptLine struct {
	ProductID   string
	ProductName string
	Expected    float64
	Received    float64
	UnitCost    float64
}

// GoodsReceiptFromRaw builds a GoodsReceipt from a raw backend record.
func GoodsReceiptFromRaw(raw Raw) GoodsReceipt {
	rawLines := raw.Objects("lines", "items")
	g := GoodsReceipt{
		ID:           raw.Str("id", "_id", "grn_id"),
		Number:       raw.Str("grn_number", "number"),
		SupplierID:   raw.Str("supplier_id", "supplierId"),
		SupplierName: raw.Str("supplier_name", "supplier"),
		TotalValue:   raw.Float("total_value", "total"),
		ReceivedAt:   raw.Time("received_at", "receivedAt", "created_at"),
		Lines:        make([]GoodsReceiptLine, 0, len(rawLines)),
		Deleted:      raw.Bool("deleted"),
	}
	for _, line := range rawLines {
		g.Lines = append(g.Lines, GoodsReceiptLine{
			ProductID:   line.Str("product_id", "productId"),
			ProductName: line.Str("product_name", "product"),
			Expected:    line.Float("expected_quantity", "expected"),
			Received:    line.Float("received_quantity", "received", "quantity"),
			UnitCost:    line.Float("unit_cost", "cost"),
		})
	}
	return g
}

// Sale is a completed checkout transaction.
type Sale struct {
	ID        string
	Number    string
	Total     float64
	Lines     []SaleLine
	CreatedAt time.Time
	Deleted   bool
}

// SaleLine is a single sold item on a sale.
type SaleLine struct {
	ProductID   string
	ProductName string
	Quantity    float64
	UnitPrice   float64
	LineTotal   float64
}

// SaleFromRaw builds a Sale from a raw backend record.
func SaleFromRaw(raw Raw) Sale {
	rawLines := raw.Objects("lines", "items")
	s := Sale{
		ID:        raw.Str("id", "_id", "sale_id"),
		Number:    raw.Str("sale_number", "number"),
		Total:     raw.Float("total", "grand_total"),
		Lines:     make([]SaleLine, 0, len(rawLines)),
		CreatedAt: raw.Time("created_at", "createdAt"),
		Deleted:   raw.Bool("deleted"),
	}
	for _, line := range rawLines {
		s.Lines = append(s.Lines, SaleLine{
			ProductID:   line.Str("product_id", "productId"),
			ProductName: line.Str("product_name", "product"),
			Quantity:    line.Float("quantity", "qty"),
			UnitPrice:   line.Float("unit_price", "price"),
			LineTotal:   line.Float("line_total", "total"),
		})
	}
	return s
}

// Return is a customer return against a prior sale.
type Return struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  float64
	Reason    string
	CreatedAt time.Time
	Deleted   bool
}

// ReturnFromRaw builds a Return from a raw backend record.
func ReturnFromRaw(raw Raw) Return {
	return Return{
		ID:        raw.Str("id", "_id", "return_id"),
		SaleID:    raw.Str("sale_id", "saleId"),
		ProductID: raw.Str("product_id", "productId"),
		Quantity:  raw.Float("quantity", "qty"),
		Reason:    raw.Str("reason"),
		CreatedAt: raw.Time("created_at", "createdAt"),
		Deleted:   raw.Bool("deleted"),
	}
}
