package repositories

import (
	"context"
	"database/sql"

	"procureBack/internal/models"
)

type ComparisonRepository struct {
	DB *sql.DB
}

// ComparisonOfferRow is one submitted quotation line joined with its header
// and the seller account's owner name. Ranking happens in the service.
type ComparisonOfferRow struct {
	TenderItemID int
	Offer        models.SupplierOffer
}

func (r *ComparisonRepository) OffersByTender(ctx context.Context, tenderID int) ([]ComparisonOfferRow, error) {
	query := `
		SELECT qi.tender_item_id, qi.id, q.id, q.seller_account_id, COALESCE(u.name, ''),
		       qi.unit_price, qi.discount_percent, qi.final_price, qi.alt_brand, qi.alt_origin,
		       q.delivery_period, q.submitted_at
		FROM seller_quotation_items qi
		JOIN seller_quotations q ON q.id = qi.quotation_id
		LEFT JOIN users u ON u.id = q.seller_account_id
		WHERE q.tender_id = ? AND q.status = 'submitted'
	`
	rows, err := r.DB.QueryContext(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []ComparisonOfferRow
	for rows.Next() {
		var row ComparisonOfferRow
		if err := rows.Scan(
			&row.TenderItemID, &row.Offer.QuotationItemID, &row.Offer.QuotationID, &row.Offer.SellerAccountID,
			&row.Offer.SellerName, &row.Offer.UnitPrice, &row.Offer.DiscountPercent, &row.Offer.FinalPrice,
			&row.Offer.AltBrand, &row.Offer.AltOrigin, &row.Offer.DeliveryPeriod, &row.Offer.SubmittedAt,
		); err != nil {
			return nil, err
		}
		offers = append(offers, row)
	}
	return offers, rows.Err()
}

func (r *ComparisonRepository) SelectionsByTender(ctx context.Context, tenderID int) ([]models.Selection, error) {
	query := `
		SELECT id, tender_id, tender_item_id, selected_quotation_id, selected_quotation_item_id, selected_by, selected_at
		FROM buyer_item_selections WHERE tender_id = ?
	`
	rows, err := r.DB.QueryContext(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []models.Selection
	for rows.Next() {
		var s models.Selection
		if err := rows.Scan(&s.ID, &s.TenderID, &s.TenderItemID, &s.QuotationID, &s.QuotationItemID, &s.SelectedBy, &s.SelectedAt); err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, rows.Err()
}
