package services

import (
	"context"
	"sort"

	"procureBack/internal/models"
	"procureBack/internal/repositories"
)

const DefaultComparisonTopN = 5

type ComparisonStore interface {
	OffersByTender(ctx context.Context, tenderID int) ([]repositories.ComparisonOfferRow, error)
	SelectionsByTender(ctx context.Context, tenderID int) ([]models.Selection, error)
}

type ComparisonService struct {
	TenderRepo     TenderReader
	ComparisonRepo ComparisonStore
}

// Compare ranks every submitted offer per tender item by final price,
// ascending, and truncates to topN suppliers. Equal final prices order by
// earliest submission, then quotation id, so the ranking is deterministic.
// Items without a single submitted offer are present with an empty supplier
// list so callers can render "no bids" instead of skipping the row.
func (s *ComparisonService) Compare(ctx context.Context, claims models.Claims, tenderID, topN int) ([]models.ItemComparison, error) {
	tender, err := s.TenderRepo.GetTenderByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender.AccountID != claims.EffectiveAccountID() {
		return nil, models.ErrForbidden
	}
	if topN <= 0 {
		topN = DefaultComparisonTopN
	}

	items, err := s.TenderRepo.ItemsByTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	offers, err := s.ComparisonRepo.OffersByTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	selections, err := s.ComparisonRepo.SelectionsByTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	selected := make(map[[2]int]bool, len(selections))
	for _, sel := range selections {
		selected[[2]int{sel.TenderItemID, sel.QuotationID}] = true
	}

	byItem := make(map[int][]models.SupplierOffer, len(items))
	for _, row := range offers {
		byItem[row.TenderItemID] = append(byItem[row.TenderItemID], row.Offer)
	}

	result := make([]models.ItemComparison, 0, len(items))
	for _, item := range items {
		suppliers := byItem[item.ID]
		sort.SliceStable(suppliers, func(i, j int) bool {
			if suppliers[i].FinalPrice != suppliers[j].FinalPrice {
				return suppliers[i].FinalPrice < suppliers[j].FinalPrice
			}
			ti, tj := suppliers[i].SubmittedAt, suppliers[j].SubmittedAt
			if ti != nil && tj != nil && !ti.Equal(*tj) {
				return ti.Before(*tj)
			}
			return suppliers[i].QuotationID < suppliers[j].QuotationID
		})
		if len(suppliers) > topN {
			suppliers = suppliers[:topN]
		}
		if suppliers == nil {
			suppliers = []models.SupplierOffer{}
		}
		for i := range suppliers {
			suppliers[i].IsSelected = selected[[2]int{item.ID, suppliers[i].QuotationID}]
		}
		result = append(result, models.ItemComparison{Item: item, Suppliers: suppliers})
	}
	return result, nil
}
