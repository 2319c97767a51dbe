package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"procureBack/internal/models"
)

type fakeQuotationReader struct {
	quotation models.Quotation
	items     []models.QuotationItem
}

func (f *fakeQuotationReader) GetByID(ctx context.Context, id int) (models.Quotation, error) {
	if f.quotation.ID != id {
		return models.Quotation{}, models.ErrNoRecord
	}
	return f.quotation, nil
}

func (f *fakeQuotationReader) ItemsByQuotation(ctx context.Context, quotationID int) ([]models.QuotationItem, error) {
	return f.items, nil
}

type fakeSelectionStore struct {
	byItem map[[2]int]models.Selection
}

func (f *fakeSelectionStore) UpsertSelection(ctx context.Context, s models.Selection) (models.Selection, error) {
	if f.byItem == nil {
		f.byItem = map[[2]int]models.Selection{}
	}
	s.SelectedAt = time.Now()
	f.byItem[[2]int{s.TenderID, s.TenderItemID}] = s
	return s, nil
}

func newSelectionService(store *fakeSelectionStore) *SelectionService {
	now := time.Now()
	return &SelectionService{
		TenderRepo: &fakeTenderReader{tender: models.Tender{ID: 10, AccountID: 1}},
		QuotationRepo: &fakeQuotationReader{
			quotation: models.Quotation{ID: 101, TenderID: 10, SellerAccountID: 5, Status: models.QuotationStatusSubmitted, SubmittedAt: &now},
			items: []models.QuotationItem{
				{ID: 201, QuotationID: 101, TenderItemID: 1, FinalPrice: 4.50},
				{ID: 202, QuotationID: 101, TenderItemID: 2, FinalPrice: 2.00},
			},
		},
		SelectionRepo: store,
	}
}

func TestSelectSupplier(t *testing.T) {
	store := &fakeSelectionStore{}
	svc := newSelectionService(store)

	sel, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{
		TenderID: 10, ItemID: 1, QuotationID: 101,
	})
	if err != nil {
		t.Fatalf("SelectSupplier: %v", err)
	}
	if sel.QuotationItemID != 201 {
		t.Fatalf("want quotation line 201, got %d", sel.QuotationItemID)
	}
	if sel.SelectedBy != 1 {
		t.Fatalf("want selection attributed to user 1, got %d", sel.SelectedBy)
	}
}

func TestSelectSupplierOverwritesPerItem(t *testing.T) {
	store := &fakeSelectionStore{}
	svc := newSelectionService(store)

	for i := 0; i < 2; i++ {
		if _, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{
			TenderID: 10, ItemID: 1, QuotationID: 101,
		}); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
	}
	if len(store.byItem) != 1 {
		t.Fatalf("want a single live selection per item, got %d", len(store.byItem))
	}
}

func TestSelectSupplierRejections(t *testing.T) {
	svc := newSelectionService(&fakeSelectionStore{})

	t.Run("missing ids", func(t *testing.T) {
		_, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{TenderID: 10})
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("foreign tender", func(t *testing.T) {
		other := models.Claims{UserID: 42, Type: models.TypeBuyer}
		_, err := svc.SelectSupplier(context.Background(), other, models.SelectSupplierRequest{TenderID: 10, ItemID: 1, QuotationID: 101})
		if !errors.Is(err, models.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})

	t.Run("quotation from another tender", func(t *testing.T) {
		svc := newSelectionService(&fakeSelectionStore{})
		svc.QuotationRepo.(*fakeQuotationReader).quotation.TenderID = 11
		_, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{TenderID: 10, ItemID: 1, QuotationID: 101})
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("draft quotation", func(t *testing.T) {
		svc := newSelectionService(&fakeSelectionStore{})
		svc.QuotationRepo.(*fakeQuotationReader).quotation.Status = models.QuotationStatusDraft
		_, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{TenderID: 10, ItemID: 1, QuotationID: 101})
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("no line for the item", func(t *testing.T) {
		_, err := svc.SelectSupplier(context.Background(), buyerClaims(), models.SelectSupplierRequest{TenderID: 10, ItemID: 99, QuotationID: 101})
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}
