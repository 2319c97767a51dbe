package services

import (
	"context"

	"procureBack/internal/models"
)

type QuotationReader interface {
	GetByID(ctx context.Context, id int) (models.Quotation, error)
	ItemsByQuotation(ctx context.Context, quotationID int) ([]models.QuotationItem, error)
}

type SelectionStore interface {
	UpsertSelection(ctx context.Context, s models.Selection) (models.Selection, error)
}

type SelectionService struct {
	TenderRepo    TenderReader
	QuotationRepo QuotationReader
	SelectionRepo SelectionStore
}

// SelectSupplier records the buyer's winning quotation line for one tender
// item. The upsert keeps at most one live selection per item; re-selecting
// with a different quotation silently overwrites the prior choice.
func (s *SelectionService) SelectSupplier(ctx context.Context, claims models.Claims, req models.SelectSupplierRequest) (models.Selection, error) {
	if req.TenderID <= 0 || req.ItemID <= 0 || req.QuotationID <= 0 {
		return models.Selection{}, models.Validationf("tender_id, item_id and quotation_id are required")
	}

	tender, err := s.TenderRepo.GetTenderByID(ctx, req.TenderID)
	if err != nil {
		return models.Selection{}, err
	}
	if tender.AccountID != claims.EffectiveAccountID() {
		return models.Selection{}, models.ErrForbidden
	}

	quotation, err := s.QuotationRepo.GetByID(ctx, req.QuotationID)
	if err != nil {
		return models.Selection{}, err
	}
	if quotation.TenderID != req.TenderID {
		return models.Selection{}, models.Validationf("quotation %d does not belong to tender %d", req.QuotationID, req.TenderID)
	}
	if quotation.Status != models.QuotationStatusSubmitted {
		return models.Selection{}, models.Validationf("quotation %d has not been submitted", req.QuotationID)
	}

	items, err := s.QuotationRepo.ItemsByQuotation(ctx, req.QuotationID)
	if err != nil {
		return models.Selection{}, err
	}
	var quotationItemID int
	for _, it := range items {
		if it.TenderItemID == req.ItemID {
			quotationItemID = it.ID
			break
		}
	}
	if quotationItemID == 0 {
		return models.Selection{}, models.Validationf("quotation %d has no line for item %d", req.QuotationID, req.ItemID)
	}

	return s.SelectionRepo.UpsertSelection(ctx, models.Selection{
		TenderID:        req.TenderID,
		TenderItemID:    req.ItemID,
		QuotationID:     req.QuotationID,
		QuotationItemID: quotationItemID,
		SelectedBy:      claims.UserID,
	})
}
