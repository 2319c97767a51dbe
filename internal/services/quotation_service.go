package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"path"
	"time"

	"github.com/google/uuid"

	"procureBack/internal/models"
)

type QuotationStore interface {
	GetByID(ctx context.Context, id int) (models.Quotation, error)
	FindByTenderAndAccount(ctx context.Context, tenderID, sellerAccountID int) (models.Quotation, error)
	FindByInvitationAndAccount(ctx context.Context, invitationID, sellerAccountID int) (models.Quotation, error)
	CreateWithItems(ctx context.Context, q models.Quotation, items []models.QuotationItem) (models.Quotation, error)
	ReplaceWithItems(ctx context.Context, q models.Quotation, items []models.QuotationItem) error
	ItemsByQuotation(ctx context.Context, quotationID int) ([]models.QuotationItem, error)
	ListSubmittedByAccount(ctx context.Context, sellerAccountID int) ([]models.SubmittedQuotationSummary, error)
	SetDocumentPath(ctx context.Context, quotationID int, path string) error
}

// InvitationSource resolves the tender a submission targets, by token or by
// the seller account's email roster.
type InvitationSource interface {
	ResolveByToken(ctx context.Context, token string) (models.Invitation, error)
	ResolveForAccount(ctx context.Context, tenderID int, claims models.Claims) (models.Invitation, error)
}

// InventoryChecker is the advisory availability probe. It may report
// supported=false (no inventory table in this deployment); it never blocks a
// submission.
type InventoryChecker interface {
	Availability(ctx context.Context, sellerAccountID int, itemNames []string) (map[string]float64, bool, error)
}

type DocumentStorage interface {
	Upload(file []byte, fileName string, folder string) (string, error)
}

type QuotationService struct {
	QuotationRepo QuotationStore
	TenderRepo    TenderReader
	Invitations   InvitationSource
	Inventory     InventoryChecker
	Storage       DocumentStorage
	ErrorLog      *log.Logger
}

// Submit is an idempotent upsert: the second submission for the same
// (tender, seller account) replaces the quotation's header fields and its
// full item set instead of creating a new quotation.
func (s *QuotationService) Submit(ctx context.Context, claims models.Claims, req models.SubmitQuotationRequest) (models.QuotationWithItems, error) {
	invitation, err := s.resolveInvitation(ctx, claims, req)
	if err != nil {
		return models.QuotationWithItems{}, err
	}
	tenderID := invitation.TenderID

	if len(req.Items) == 0 {
		return models.QuotationWithItems{}, models.Validationf("at least one item is required")
	}

	status := req.Status
	if status == "" {
		status = models.QuotationStatusSubmitted
	}
	if status != models.QuotationStatusDraft && status != models.QuotationStatusSubmitted {
		return models.QuotationWithItems{}, models.Validationf("status must be %q or %q", models.QuotationStatusDraft, models.QuotationStatusSubmitted)
	}

	tenderItems, err := s.TenderRepo.ItemsByTender(ctx, tenderID)
	if err != nil {
		return models.QuotationWithItems{}, err
	}
	itemsByID := make(map[int]models.TenderItem, len(tenderItems))
	for _, it := range tenderItems {
		itemsByID[it.ID] = it
	}

	items := make([]models.QuotationItem, 0, len(req.Items))
	for _, in := range req.Items {
		tenderItem, ok := itemsByID[in.TenderItemID]
		if !ok {
			return models.QuotationWithItems{}, models.Validationf("item %d does not belong to this tender", in.TenderItemID)
		}
		if in.UnitPrice <= 0 {
			return models.QuotationWithItems{}, models.Validationf("item %q: unit price must be greater than zero", tenderItem.Name)
		}
		if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
			return models.QuotationWithItems{}, models.Validationf("item %q: discount percent must be between 0 and 100", tenderItem.Name)
		}
		items = append(items, models.QuotationItem{
			TenderItemID:    in.TenderItemID,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			FinalPrice:      finalPrice(in.UnitPrice, in.DiscountPercent),
			AltBrand:        in.AltBrand,
			AltOrigin:       in.AltOrigin,
			Remarks:         in.Remarks,
		})
	}

	s.checkInventory(ctx, claims.EffectiveAccountID(), itemsByID, items)

	accountID := claims.EffectiveAccountID()
	now := time.Now()

	existing, err := s.QuotationRepo.FindByTenderAndAccount(ctx, tenderID, accountID)
	if errors.Is(err, models.ErrNoRecord) && invitation.ID != 0 {
		existing, err = s.QuotationRepo.FindByInvitationAndAccount(ctx, invitation.ID, accountID)
	}

	var quotation models.Quotation
	switch {
	case err == nil:
		quotation = existing
		quotation.TenderID = tenderID
		quotation.DeliveryPeriod = req.DeliveryPeriod
		quotation.Remarks = req.Remarks
		quotation.SubmittedBy = claims.UserID
		if status == models.QuotationStatusSubmitted && existing.SubmittedAt == nil {
			quotation.SubmittedAt = &now
		}
		quotation.Status = status
		quotation.UpdatedAt = &now
		if err := s.QuotationRepo.ReplaceWithItems(ctx, quotation, items); err != nil {
			return models.QuotationWithItems{}, err
		}
	case errors.Is(err, models.ErrNoRecord):
		quotation = models.Quotation{
			TenderID:        tenderID,
			InvitationID:    invitation.ID,
			SellerAccountID: accountID,
			SubmittedBy:     claims.UserID,
			DeliveryPeriod:  req.DeliveryPeriod,
			Remarks:         req.Remarks,
			Status:          status,
			CreatedAt:       now,
		}
		if status == models.QuotationStatusSubmitted {
			quotation.SubmittedAt = &now
		}
		quotation, err = s.QuotationRepo.CreateWithItems(ctx, quotation, items)
		if err != nil {
			return models.QuotationWithItems{}, err
		}
	default:
		return models.QuotationWithItems{}, err
	}

	stored, err := s.QuotationRepo.ItemsByQuotation(ctx, quotation.ID)
	if err != nil {
		return models.QuotationWithItems{}, err
	}
	return models.QuotationWithItems{Quotation: quotation, Items: stored}, nil
}

// MyQuotation returns the invited tender together with the seller's existing
// quotation, or a null quotation when none has been submitted yet.
func (s *QuotationService) MyQuotation(ctx context.Context, claims models.Claims, token string, tenderID int) (models.MyQuotationView, error) {
	var invitation models.Invitation
	var err error
	if tenderID > 0 {
		invitation, err = s.Invitations.ResolveForAccount(ctx, tenderID, claims)
	} else {
		invitation, err = s.Invitations.ResolveByToken(ctx, token)
	}
	if err != nil {
		return models.MyQuotationView{}, err
	}

	tender, err := s.TenderRepo.GetTenderByID(ctx, invitation.TenderID)
	if err != nil {
		return models.MyQuotationView{}, err
	}
	items, err := s.TenderRepo.ItemsByTender(ctx, invitation.TenderID)
	if err != nil {
		return models.MyQuotationView{}, err
	}

	view := models.MyQuotationView{Tender: tender, Items: items, Invitation: invitation}

	accountID := claims.EffectiveAccountID()
	quotation, err := s.QuotationRepo.FindByTenderAndAccount(ctx, invitation.TenderID, accountID)
	if errors.Is(err, models.ErrNoRecord) {
		quotation, err = s.QuotationRepo.FindByInvitationAndAccount(ctx, invitation.ID, accountID)
	}
	if errors.Is(err, models.ErrNoRecord) {
		return view, nil
	}
	if err != nil {
		return models.MyQuotationView{}, err
	}

	quotationItems, err := s.QuotationRepo.ItemsByQuotation(ctx, quotation.ID)
	if err != nil {
		return models.MyQuotationView{}, err
	}
	view.Quotation = &models.QuotationWithItems{Quotation: quotation, Items: quotationItems}
	return view, nil
}

func (s *QuotationService) SubmittedQuotations(ctx context.Context, claims models.Claims) ([]models.SubmittedQuotationSummary, error) {
	return s.QuotationRepo.ListSubmittedByAccount(ctx, claims.EffectiveAccountID())
}

// AttachDocument uploads a supporting document and records its storage path
// on the quotation. Size and extension gating happens in the handler.
func (s *QuotationService) AttachDocument(ctx context.Context, claims models.Claims, quotationID int, fileName string, data []byte) (string, error) {
	quotation, err := s.QuotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return "", err
	}
	if quotation.SellerAccountID != claims.EffectiveAccountID() {
		return "", models.ErrForbidden
	}
	if s.Storage == nil {
		return "", fmt.Errorf("document storage is not configured")
	}

	name := fmt.Sprintf("%d_%s%s", quotationID, uuid.NewString(), path.Ext(fileName))
	storedPath, err := s.Storage.Upload(data, name, "quotation-documents")
	if err != nil {
		return "", err
	}
	if err := s.QuotationRepo.SetDocumentPath(ctx, quotationID, storedPath); err != nil {
		return "", err
	}
	return storedPath, nil
}

func (s *QuotationService) resolveInvitation(ctx context.Context, claims models.Claims, req models.SubmitQuotationRequest) (models.Invitation, error) {
	switch {
	case req.InvitationToken != "":
		return s.Invitations.ResolveByToken(ctx, req.InvitationToken)
	case req.TenderID > 0:
		return s.Invitations.ResolveForAccount(ctx, req.TenderID, claims)
	default:
		return models.Invitation{}, models.Validationf("invitation_token or tender_id is required")
	}
}

// checkInventory logs shortfalls against the seller's on-hand stock. Missing
// inventory support and probe errors degrade to a log line; the submission
// proceeds either way.
func (s *QuotationService) checkInventory(ctx context.Context, sellerAccountID int, tenderItems map[int]models.TenderItem, items []models.QuotationItem) {
	if s.Inventory == nil {
		return
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, tenderItems[it.TenderItemID].Name)
	}

	available, supported, err := s.Inventory.Availability(ctx, sellerAccountID, names)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("inventory check failed for account %d: %v", sellerAccountID, err)
		}
		return
	}
	if !supported {
		return
	}
	for _, it := range items {
		name := tenderItems[it.TenderItemID].Name
		if qty := available[name]; qty < tenderItems[it.TenderItemID].Quantity && s.ErrorLog != nil {
			s.ErrorLog.Printf("inventory shortfall for account %d, item %q: have %.3f, tender asks %.3f",
				sellerAccountID, name, qty, tenderItems[it.TenderItemID].Quantity)
		}
	}
}

// finalPrice is the post-discount unit price, rounded to cents. It is the
// only ranking key the comparison view uses.
func finalPrice(unitPrice, discountPercent float64) float64 {
	return math.Round(unitPrice*(100-discountPercent)) / 100
}
