package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"procureBack/internal/models"
)

type InvitationRepository struct {
	DB *sql.DB
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	query := `
		SELECT id, tender_id, email, invitation_token, COALESCE(required_documents, ''), created_at
		FROM invitations WHERE invitation_token = ?
	`
	var inv models.Invitation
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&inv.ID, &inv.TenderID, &inv.Email, &inv.Token, &inv.RequiredDocuments, &inv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invitation{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

// FindByTenderAndEmails returns any invitation for the tender addressed to
// one of the given emails. The roster can grow after the invitation was sent,
// so the match is against the full current email set of the account.
func (r *InvitationRepository) FindByTenderAndEmails(ctx context.Context, tenderID int, emails []string) (models.Invitation, error) {
	if len(emails) == 0 {
		return models.Invitation{}, models.ErrNoRecord
	}

	placeholders := strings.Repeat("?,", len(emails))
	placeholders = placeholders[:len(placeholders)-1]
	query := `
		SELECT id, tender_id, email, invitation_token, COALESCE(required_documents, ''), created_at
		FROM invitations WHERE tender_id = ? AND email IN (` + placeholders + `) LIMIT 1
	`

	args := make([]interface{}, 0, len(emails)+1)
	args = append(args, tenderID)
	for _, email := range emails {
		args = append(args, email)
	}

	var inv models.Invitation
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID, &inv.TenderID, &inv.Email, &inv.Token, &inv.RequiredDocuments, &inv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invitation{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

// ListByEmails returns every invitation addressed to any of the emails,
// joined with its tender, newest first.
func (r *InvitationRepository) ListByEmails(ctx context.Context, emails []string) ([]models.InvitationSummary, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(emails))
	placeholders = placeholders[:len(placeholders)-1]
	query := `
		SELECT i.id, i.tender_id, i.email, i.invitation_token, COALESCE(i.required_documents, ''), i.created_at,
		       t.id, t.account_id, t.title, COALESCE(t.description, ''), t.start_date, t.end_date, t.status,
		       COALESCE(t.required_documents, ''), t.created_at, t.updated_at
		FROM invitations i
		JOIN tenders t ON t.id = i.tender_id
		WHERE i.email IN (` + placeholders + `)
		ORDER BY i.created_at DESC
	`

	args := make([]interface{}, 0, len(emails))
	for _, email := range emails {
		args = append(args, email)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.InvitationSummary
	for rows.Next() {
		var s models.InvitationSummary
		if err := rows.Scan(
			&s.Invitation.ID, &s.Invitation.TenderID, &s.Invitation.Email, &s.Invitation.Token,
			&s.Invitation.RequiredDocuments, &s.Invitation.CreatedAt,
			&s.Tender.ID, &s.Tender.AccountID, &s.Tender.Title, &s.Tender.Description,
			&s.Tender.StartDate, &s.Tender.EndDate, &s.Tender.Status,
			&s.Tender.RequiredDocuments, &s.Tender.CreatedAt, &s.Tender.UpdatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
