package models

import "time"

// SupplierOffer is one submitted quotation line for a tender item, ranked by
// final (post-discount) price in the comparison view.
type SupplierOffer struct {
	QuotationID     int        `json:"quotation_id"`
	QuotationItemID int        `json:"quotation_item_id"`
	SellerAccountID int        `json:"seller_account_id"`
	SellerName      string     `json:"seller_name"`
	UnitPrice       float64    `json:"unit_price"`
	DiscountPercent float64    `json:"discount_percent"`
	FinalPrice      float64    `json:"final_price"`
	AltBrand        string     `json:"alt_brand,omitempty"`
	AltOrigin       string     `json:"alt_origin,omitempty"`
	DeliveryPeriod  string     `json:"delivery_period,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	IsSelected      bool       `json:"is_selected"`
}

// ItemComparison always lists every item of the tender; an item nobody bid on
// carries an empty supplier list rather than being omitted.
type ItemComparison struct {
	Item      TenderItem      `json:"item"`
	Suppliers []SupplierOffer `json:"suppliers"`
}
