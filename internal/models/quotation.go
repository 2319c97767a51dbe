package models

import "time"

const (
	QuotationStatusDraft     = "draft"
	QuotationStatusSubmitted = "submitted"
)

// Quotation is a seller account's priced response to a tender, one per
// (tender, seller account) pair. The pair is enforced by find-else-insert in
// the repository, not by a unique constraint.
type Quotation struct {
	ID              int        `json:"id"`
	TenderID        int        `json:"tender_id"`
	InvitationID    int        `json:"invitation_id,omitempty"`
	SellerAccountID int        `json:"seller_account_id"`
	SubmittedBy     int        `json:"submitted_by"`
	DeliveryPeriod  string     `json:"delivery_period,omitempty"`
	Remarks         string     `json:"remarks,omitempty"`
	Status          string     `json:"status"`
	DocumentPath    string     `json:"document_path,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type QuotationItem struct {
	ID              int     `json:"id"`
	QuotationID     int     `json:"quotation_id"`
	TenderItemID    int     `json:"tender_item_id"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalPrice      float64 `json:"final_price"`
	AltBrand        string  `json:"alt_brand,omitempty"`
	AltOrigin       string  `json:"alt_origin,omitempty"`
	Remarks         string  `json:"remarks,omitempty"`
}

type QuotationItemInput struct {
	TenderItemID    int     `json:"tender_item_id"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	AltBrand        string  `json:"alt_brand,omitempty"`
	AltOrigin       string  `json:"alt_origin,omitempty"`
	Remarks         string  `json:"remarks,omitempty"`
}

// SubmitQuotationRequest addresses the tender either by invitation token
// (public flow) or by tender id (authenticated flow).
type SubmitQuotationRequest struct {
	InvitationToken string               `json:"invitation_token,omitempty"`
	TenderID        int                  `json:"tender_id,omitempty"`
	DeliveryPeriod  string               `json:"delivery_period,omitempty"`
	Remarks         string               `json:"remarks,omitempty"`
	Status          string               `json:"status,omitempty"`
	Items           []QuotationItemInput `json:"items"`
}

type QuotationWithItems struct {
	Quotation Quotation       `json:"quotation"`
	Items     []QuotationItem `json:"items"`
}

// MyQuotationView pairs the invited tender with the seller's existing
// quotation, if any. Quotation stays null until a first submission exists.
type MyQuotationView struct {
	Tender     Tender              `json:"tender"`
	Items      []TenderItem        `json:"items"`
	Invitation Invitation          `json:"invitation"`
	Quotation  *QuotationWithItems `json:"quotation"`
}

// SubmittedQuotationSummary is one row of a seller's submitted-quotation
// listing.
type SubmittedQuotationSummary struct {
	Quotation   Quotation `json:"quotation"`
	TenderTitle string    `json:"tender_title"`
}
