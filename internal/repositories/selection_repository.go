package repositories

import (
	"context"
	"database/sql"
	"time"

	"procureBack/internal/models"
)

type SelectionRepository struct {
	DB *sql.DB
}

// UpsertSelection keeps at most one live selection per (tender, item); a
// repeated call replaces the previous winner, last write wins.
func (r *SelectionRepository) UpsertSelection(ctx context.Context, s models.Selection) (models.Selection, error) {
	now := time.Now()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO buyer_item_selections (tender_id, tender_item_id, selected_quotation_id, selected_quotation_item_id, selected_by, selected_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			selected_quotation_id = VALUES(selected_quotation_id),
			selected_quotation_item_id = VALUES(selected_quotation_item_id),
			selected_by = VALUES(selected_by),
			selected_at = VALUES(selected_at)`,
		s.TenderID, s.TenderItemID, s.QuotationID, s.QuotationItemID, s.SelectedBy, now,
	)
	if err != nil {
		return models.Selection{}, err
	}
	s.SelectedAt = now
	return s, nil
}
