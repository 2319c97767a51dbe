package repositories

import (
	"context"
	"database/sql"
	"errors"

	"procureBack/internal/models"
)

type QuotationRepository struct {
	DB *sql.DB
}

const quotationColumns = `
	id, tender_id, COALESCE(invitation_id, 0), seller_account_id, submitted_by,
	delivery_period, COALESCE(remarks, ''), status, document_path, submitted_at, created_at, updated_at
`

func scanQuotation(row *sql.Row) (models.Quotation, error) {
	var q models.Quotation
	err := row.Scan(
		&q.ID, &q.TenderID, &q.InvitationID, &q.SellerAccountID, &q.SubmittedBy,
		&q.DeliveryPeriod, &q.Remarks, &q.Status, &q.DocumentPath, &q.SubmittedAt, &q.CreatedAt, &q.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quotation{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Quotation{}, err
	}
	return q, nil
}

func (r *QuotationRepository) GetByID(ctx context.Context, id int) (models.Quotation, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+quotationColumns+` FROM seller_quotations WHERE id = ?`, id)
	return scanQuotation(row)
}

func (r *QuotationRepository) FindByTenderAndAccount(ctx context.Context, tenderID, sellerAccountID int) (models.Quotation, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+quotationColumns+` FROM seller_quotations WHERE tender_id = ? AND seller_account_id = ? LIMIT 1`,
		tenderID, sellerAccountID,
	)
	return scanQuotation(row)
}

func (r *QuotationRepository) FindByInvitationAndAccount(ctx context.Context, invitationID, sellerAccountID int) (models.Quotation, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+quotationColumns+` FROM seller_quotations WHERE invitation_id = ? AND seller_account_id = ? LIMIT 1`,
		invitationID, sellerAccountID,
	)
	return scanQuotation(row)
}

// CreateWithItems inserts the quotation header and its items in one
// transaction; a failed item insert rolls back the header.
func (r *QuotationRepository) CreateWithItems(ctx context.Context, q models.Quotation, items []models.QuotationItem) (models.Quotation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Quotation{}, err
	}
	defer tx.Rollback()

	var invitation interface{}
	if q.InvitationID != 0 {
		invitation = q.InvitationID
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO seller_quotations (tender_id, invitation_id, seller_account_id, submitted_by, delivery_period, remarks, status, submitted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.TenderID, invitation, q.SellerAccountID, q.SubmittedBy, q.DeliveryPeriod, q.Remarks, q.Status, q.SubmittedAt, q.CreatedAt,
	)
	if err != nil {
		return models.Quotation{}, err
	}
	quotationID, err := result.LastInsertId()
	if err != nil {
		return models.Quotation{}, err
	}
	q.ID = int(quotationID)

	if err := insertQuotationItems(ctx, tx, q.ID, items); err != nil {
		return models.Quotation{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Quotation{}, err
	}
	return q, nil
}

// ReplaceWithItems updates the quotation header and swaps its full item set
// in one transaction. The row lock serializes concurrent re-submissions by
// the same seller so delete and reinsert sequences cannot interleave.
func (r *QuotationRepository) ReplaceWithItems(ctx context.Context, q models.Quotation, items []models.QuotationItem) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var locked int
	err = tx.QueryRowContext(ctx, `SELECT id FROM seller_quotations WHERE id = ? FOR UPDATE`, q.ID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNoRecord
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE seller_quotations
		SET delivery_period = ?, remarks = ?, status = ?, submitted_by = ?, submitted_at = ?, updated_at = ?
		WHERE id = ?`,
		q.DeliveryPeriod, q.Remarks, q.Status, q.SubmittedBy, q.SubmittedAt, q.UpdatedAt, q.ID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM seller_quotation_items WHERE quotation_id = ?`, q.ID); err != nil {
		return err
	}
	if err := insertQuotationItems(ctx, tx, q.ID, items); err != nil {
		return err
	}

	return tx.Commit()
}

func insertQuotationItems(ctx context.Context, tx *sql.Tx, quotationID int, items []models.QuotationItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO seller_quotation_items (quotation_id, tender_item_id, unit_price, discount_percent, final_price, alt_brand, alt_origin, remarks)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			quotationID, it.TenderItemID, it.UnitPrice, it.DiscountPercent, it.FinalPrice, it.AltBrand, it.AltOrigin, it.Remarks,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuotationRepository) ItemsByQuotation(ctx context.Context, quotationID int) ([]models.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, tender_item_id, unit_price, discount_percent, final_price, alt_brand, alt_origin, COALESCE(remarks, '')
		FROM seller_quotation_items WHERE quotation_id = ? ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.QuotationItem
	for rows.Next() {
		var it models.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.TenderItemID, &it.UnitPrice, &it.DiscountPercent,
			&it.FinalPrice, &it.AltBrand, &it.AltOrigin, &it.Remarks); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *QuotationRepository) ListSubmittedByAccount(ctx context.Context, sellerAccountID int) ([]models.SubmittedQuotationSummary, error) {
	query := `
		SELECT q.id, q.tender_id, COALESCE(q.invitation_id, 0), q.seller_account_id, q.submitted_by,
		       q.delivery_period, COALESCE(q.remarks, ''), q.status, q.document_path, q.submitted_at, q.created_at, q.updated_at,
		       t.title
		FROM seller_quotations q
		JOIN tenders t ON t.id = q.tender_id
		WHERE q.seller_account_id = ? AND q.status = 'submitted'
		ORDER BY q.submitted_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, sellerAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.SubmittedQuotationSummary
	for rows.Next() {
		var s models.SubmittedQuotationSummary
		if err := rows.Scan(
			&s.Quotation.ID, &s.Quotation.TenderID, &s.Quotation.InvitationID, &s.Quotation.SellerAccountID,
			&s.Quotation.SubmittedBy, &s.Quotation.DeliveryPeriod, &s.Quotation.Remarks, &s.Quotation.Status,
			&s.Quotation.DocumentPath, &s.Quotation.SubmittedAt, &s.Quotation.CreatedAt, &s.Quotation.UpdatedAt,
			&s.TenderTitle,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *QuotationRepository) SetDocumentPath(ctx context.Context, quotationID int, path string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE seller_quotations SET document_path = ? WHERE id = ?`, path, quotationID)
	return err
}
