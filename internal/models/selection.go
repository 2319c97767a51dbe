package models

import "time"

// Selection records the buyer's choice of winning quotation line for one
// tender item. At most one live row per (tender, item); a repeated select
// overwrites the previous choice.
type Selection struct {
	ID              int       `json:"id"`
	TenderID        int       `json:"tender_id"`
	TenderItemID    int       `json:"tender_item_id"`
	QuotationID     int       `json:"selected_quotation_id"`
	QuotationItemID int       `json:"selected_quotation_item_id"`
	SelectedBy      int       `json:"selected_by"`
	SelectedAt      time.Time `json:"selected_at"`
}

type SelectSupplierRequest struct {
	TenderID    int `json:"tender_id"`
	ItemID      int `json:"item_id"`
	QuotationID int `json:"quotation_id"`
}
