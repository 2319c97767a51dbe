package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"procureBack/internal/models"
)

// TenderStore is the persistence surface the tender workflow needs; the
// multi-statement writes behind CreateTender and ApplyTenderUpdate are
// transactional in the implementation.
type TenderStore interface {
	CreateTender(ctx context.Context, tender models.Tender, items []models.TenderItem, invitations []models.Invitation) (models.Tender, []models.Invitation, error)
	GetTenderByID(ctx context.Context, id int) (models.Tender, error)
	ListTendersByAccount(ctx context.Context, accountID int) ([]models.Tender, error)
	ItemsByTender(ctx context.Context, tenderID int) ([]models.TenderItem, error)
	InvitationsByTender(ctx context.Context, tenderID int) ([]models.Invitation, error)
	ApplyTenderUpdate(ctx context.Context, tender models.Tender, diff models.TenderItemDiff, newInvitations []models.Invitation) ([]models.Invitation, error)
}

// InvitationMailer dispatches invitation emails. Delivery is fire-and-forget
// and runs outside the tender transaction; a failed send never affects the
// persisted tender.
type InvitationMailer interface {
	SendInvitations(tender models.Tender, invitations []models.Invitation)
}

type TenderService struct {
	TenderRepo TenderStore
	Mailer     InvitationMailer
}

func (s *TenderService) CreateTender(ctx context.Context, claims models.Claims, req models.CreateTenderRequest) (models.TenderWithItems, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.TenderWithItems{}, models.Validationf("title is required")
	}
	if len(req.Items) == 0 {
		return models.TenderWithItems{}, models.Validationf("at least one item is required")
	}

	items := make([]models.TenderItem, 0, len(req.Items))
	for i, in := range req.Items {
		if err := validateItemInput(i, in); err != nil {
			return models.TenderWithItems{}, err
		}
		items = append(items, itemFromInput(in))
	}

	emails, err := normalizeEmails(req.InvitedEmails)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	invitations := buildInvitations(emails, req.RequiredDocuments)

	tender := models.Tender{
		AccountID:         claims.EffectiveAccountID(),
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            models.TenderStatusPublished,
		RequiredDocuments: req.RequiredDocuments,
	}

	tender, invitations, err = s.TenderRepo.CreateTender(ctx, tender, items, invitations)
	if err != nil {
		return models.TenderWithItems{}, err
	}

	if s.Mailer != nil && len(invitations) > 0 {
		go s.Mailer.SendInvitations(tender, invitations)
	}

	return models.TenderWithItems{Tender: tender, Items: items, Invitations: invitations}, nil
}

// UpdateTender applies the item diff semantics: items with a known id are
// updated in place, items without an id are inserted, stored items missing
// from the payload are deleted. Only emails not yet invited get a new
// invitation row and token.
func (s *TenderService) UpdateTender(ctx context.Context, claims models.Claims, tenderID int, req models.UpdateTenderRequest) (models.TenderWithItems, error) {
	tender, err := s.TenderRepo.GetTenderByID(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	if tender.AccountID != claims.EffectiveAccountID() {
		return models.TenderWithItems{}, models.ErrForbidden
	}

	if strings.TrimSpace(req.Title) == "" {
		return models.TenderWithItems{}, models.Validationf("title is required")
	}
	if len(req.Items) == 0 {
		return models.TenderWithItems{}, models.Validationf("at least one item is required")
	}
	for i, in := range req.Items {
		if err := validateItemInput(i, in); err != nil {
			return models.TenderWithItems{}, err
		}
	}

	existing, err := s.TenderRepo.ItemsByTender(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	diff, err := diffTenderItems(existing, req.Items)
	if err != nil {
		return models.TenderWithItems{}, err
	}

	emails, err := normalizeEmails(req.InvitedEmails)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	current, err := s.TenderRepo.InvitationsByTender(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	invited := make(map[string]bool, len(current))
	for _, inv := range current {
		invited[strings.ToLower(inv.Email)] = true
	}
	var newEmails []string
	for _, email := range emails {
		if !invited[email] {
			newEmails = append(newEmails, email)
		}
	}
	newInvitations := buildInvitations(newEmails, req.RequiredDocuments)

	tender.Title = strings.TrimSpace(req.Title)
	tender.Description = req.Description
	tender.StartDate = req.StartDate
	tender.EndDate = req.EndDate
	tender.RequiredDocuments = req.RequiredDocuments

	newInvitations, err = s.TenderRepo.ApplyTenderUpdate(ctx, tender, diff, newInvitations)
	if err != nil {
		return models.TenderWithItems{}, err
	}

	if s.Mailer != nil && len(newInvitations) > 0 {
		go s.Mailer.SendInvitations(tender, newInvitations)
	}

	items, err := s.TenderRepo.ItemsByTender(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	return models.TenderWithItems{Tender: tender, Items: items, Invitations: newInvitations}, nil
}

func (s *TenderService) GetTenderForEdit(ctx context.Context, claims models.Claims, tenderID int) (models.TenderWithItems, error) {
	tender, err := s.TenderRepo.GetTenderByID(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	if tender.AccountID != claims.EffectiveAccountID() {
		return models.TenderWithItems{}, models.ErrForbidden
	}

	items, err := s.TenderRepo.ItemsByTender(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	invitations, err := s.TenderRepo.InvitationsByTender(ctx, tenderID)
	if err != nil {
		return models.TenderWithItems{}, err
	}
	return models.TenderWithItems{Tender: tender, Items: items, Invitations: invitations}, nil
}

func (s *TenderService) MyTenders(ctx context.Context, claims models.Claims) ([]models.Tender, error) {
	return s.TenderRepo.ListTendersByAccount(ctx, claims.EffectiveAccountID())
}

func validateItemInput(i int, in models.TenderItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.Validationf("item %d: name is required", i+1)
	}
	if strings.TrimSpace(in.Unit) == "" {
		return models.Validationf("item %d: unit is required", i+1)
	}
	if in.Quantity <= 0 {
		return models.Validationf("item %d: quantity must be greater than zero", i+1)
	}
	return nil
}

func itemFromInput(in models.TenderItemInput) models.TenderItem {
	return models.TenderItem{
		ID:                in.ID,
		Name:              strings.TrimSpace(in.Name),
		Brand:             in.Brand,
		Origin:            in.Origin,
		Strength:          in.Strength,
		Unit:              strings.TrimSpace(in.Unit),
		Quantity:          in.Quantity,
		AllowAlternatives: in.AllowAlternatives,
	}
}

// diffTenderItems matches the revised payload against the stored item set.
// Ids present in storage but absent from the payload are deleted.
func diffTenderItems(existing []models.TenderItem, payload []models.TenderItemInput) (models.TenderItemDiff, error) {
	known := make(map[int]bool, len(existing))
	for _, it := range existing {
		known[it.ID] = true
	}

	var diff models.TenderItemDiff
	seen := make(map[int]bool, len(payload))
	for _, in := range payload {
		if in.ID == 0 {
			diff.Insert = append(diff.Insert, itemFromInput(in))
			continue
		}
		if !known[in.ID] {
			return models.TenderItemDiff{}, models.Validationf("unknown item id %d", in.ID)
		}
		if seen[in.ID] {
			return models.TenderItemDiff{}, models.Validationf("duplicate item id %d", in.ID)
		}
		seen[in.ID] = true
		diff.Update = append(diff.Update, itemFromInput(in))
	}

	for _, it := range existing {
		if !seen[it.ID] {
			diff.Delete = append(diff.Delete, it.ID)
		}
	}
	return diff, nil
}

func normalizeEmails(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	var emails []string
	for _, email := range raw {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			continue
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, models.Validationf("invalid email address %q", email)
		}
		seen[email] = true
		emails = append(emails, email)
	}
	return emails, nil
}

func buildInvitations(emails []string, requiredDocuments string) []models.Invitation {
	invitations := make([]models.Invitation, 0, len(emails))
	for _, email := range emails {
		invitations = append(invitations, models.Invitation{
			Email:             email,
			Token:             uuid.NewString(),
			RequiredDocuments: requiredDocuments,
		})
	}
	return invitations
}
