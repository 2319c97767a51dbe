package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"procureBack/internal/models"
)

type TenderRepository struct {
	DB *sql.DB
}

// CreateTender inserts the tender, its items and one invitation per invited
// email inside a single transaction. A failure at any step leaves no partial
// tender behind.
func (r *TenderRepository) CreateTender(ctx context.Context, tender models.Tender, items []models.TenderItem, invitations []models.Invitation) (models.Tender, []models.Invitation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Tender{}, nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO tenders (account_id, title, description, start_date, end_date, status, required_documents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tender.AccountID, tender.Title, tender.Description, tender.StartDate, tender.EndDate, tender.Status, tender.RequiredDocuments, now,
	)
	if err != nil {
		return models.Tender{}, nil, err
	}
	tenderID, err := result.LastInsertId()
	if err != nil {
		return models.Tender{}, nil, err
	}
	tender.ID = int(tenderID)
	tender.CreatedAt = now

	for i := range items {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO tender_items (tender_id, account_id, name, brand, origin, strength, unit, quantity, allow_alternatives, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tender.ID, tender.AccountID, items[i].Name, items[i].Brand, items[i].Origin, items[i].Strength,
			items[i].Unit, items[i].Quantity, items[i].AllowAlternatives, now,
		)
		if err != nil {
			return models.Tender{}, nil, err
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return models.Tender{}, nil, err
		}
		items[i].ID = int(itemID)
		items[i].TenderID = tender.ID
	}

	for i := range invitations {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO invitations (tender_id, email, invitation_token, required_documents, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			tender.ID, invitations[i].Email, invitations[i].Token, invitations[i].RequiredDocuments, now,
		)
		if err != nil {
			return models.Tender{}, nil, err
		}
		invID, err := res.LastInsertId()
		if err != nil {
			return models.Tender{}, nil, err
		}
		invitations[i].ID = int(invID)
		invitations[i].TenderID = tender.ID
		invitations[i].CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return models.Tender{}, nil, err
	}
	return tender, invitations, nil
}

func (r *TenderRepository) GetTenderByID(ctx context.Context, id int) (models.Tender, error) {
	query := `
		SELECT id, account_id, title, COALESCE(description, ''), start_date, end_date, status,
		       COALESCE(required_documents, ''), created_at, updated_at
		FROM tenders WHERE id = ?
	`
	var t models.Tender
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.AccountID, &t.Title, &t.Description, &t.StartDate, &t.EndDate, &t.Status,
		&t.RequiredDocuments, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tender{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Tender{}, err
	}
	return t, nil
}

func (r *TenderRepository) ListTendersByAccount(ctx context.Context, accountID int) ([]models.Tender, error) {
	query := `
		SELECT id, account_id, title, COALESCE(description, ''), start_date, end_date, status,
		       COALESCE(required_documents, ''), created_at, updated_at
		FROM tenders WHERE account_id = ? ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		var t models.Tender
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Title, &t.Description, &t.StartDate, &t.EndDate, &t.Status,
			&t.RequiredDocuments, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}

func (r *TenderRepository) ItemsByTender(ctx context.Context, tenderID int) ([]models.TenderItem, error) {
	query := `
		SELECT id, tender_id, account_id, name, brand, origin, strength, unit, quantity, allow_alternatives, created_at
		FROM tender_items WHERE tender_id = ? ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.TenderItem
	for rows.Next() {
		var it models.TenderItem
		if err := rows.Scan(&it.ID, &it.TenderID, &it.AccountID, &it.Name, &it.Brand, &it.Origin, &it.Strength,
			&it.Unit, &it.Quantity, &it.AllowAlternatives, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *TenderRepository) InvitationsByTender(ctx context.Context, tenderID int) ([]models.Invitation, error) {
	query := `
		SELECT id, tender_id, email, invitation_token, COALESCE(required_documents, ''), created_at
		FROM invitations WHERE tender_id = ? ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.TenderID, &inv.Email, &inv.Token, &inv.RequiredDocuments, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// ApplyTenderUpdate applies a precomputed item diff plus the invitations for
// newly invited emails in one transaction. On any failure the tender keeps
// its pre-update state.
func (r *TenderRepository) ApplyTenderUpdate(ctx context.Context, tender models.Tender, diff models.TenderItemDiff, newInvitations []models.Invitation) ([]models.Invitation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE tenders SET title = ?, description = ?, start_date = ?, end_date = ?, required_documents = ?, updated_at = ?
		WHERE id = ?`,
		tender.Title, tender.Description, tender.StartDate, tender.EndDate, tender.RequiredDocuments, now, tender.ID,
	); err != nil {
		return nil, err
	}

	for _, it := range diff.Update {
		if _, err := tx.ExecContext(ctx, `
			UPDATE tender_items SET name = ?, brand = ?, origin = ?, strength = ?, unit = ?, quantity = ?, allow_alternatives = ?
			WHERE id = ? AND tender_id = ?`,
			it.Name, it.Brand, it.Origin, it.Strength, it.Unit, it.Quantity, it.AllowAlternatives, it.ID, tender.ID,
		); err != nil {
			return nil, err
		}
	}

	for _, it := range diff.Insert {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tender_items (tender_id, account_id, name, brand, origin, strength, unit, quantity, allow_alternatives, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tender.ID, tender.AccountID, it.Name, it.Brand, it.Origin, it.Strength, it.Unit, it.Quantity, it.AllowAlternatives, now,
		); err != nil {
			return nil, err
		}
	}

	for _, id := range diff.Delete {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tender_items WHERE id = ? AND tender_id = ?`, id, tender.ID); err != nil {
			return nil, err
		}
	}

	for i := range newInvitations {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO invitations (tender_id, email, invitation_token, required_documents, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			tender.ID, newInvitations[i].Email, newInvitations[i].Token, newInvitations[i].RequiredDocuments, now,
		)
		if err != nil {
			return nil, err
		}
		invID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		newInvitations[i].ID = int(invID)
		newInvitations[i].TenderID = tender.ID
		newInvitations[i].CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newInvitations, nil
}
