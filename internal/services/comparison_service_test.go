package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"procureBack/internal/models"
	"procureBack/internal/repositories"
)

type fakeComparisonStore struct {
	offers     []repositories.ComparisonOfferRow
	selections []models.Selection
}

func (f *fakeComparisonStore) OffersByTender(ctx context.Context, tenderID int) ([]repositories.ComparisonOfferRow, error) {
	return f.offers, nil
}

func (f *fakeComparisonStore) SelectionsByTender(ctx context.Context, tenderID int) ([]models.Selection, error) {
	return f.selections, nil
}

func offerRow(itemID, quotationID int, finalPrice float64, submittedAt *time.Time) repositories.ComparisonOfferRow {
	return repositories.ComparisonOfferRow{
		TenderItemID: itemID,
		Offer: models.SupplierOffer{
			QuotationID: quotationID,
			FinalPrice:  finalPrice,
			SubmittedAt: submittedAt,
		},
	}
}

func newComparisonService(store *fakeComparisonStore) *ComparisonService {
	return &ComparisonService{
		TenderRepo: &fakeTenderReader{
			tender: models.Tender{ID: 10, AccountID: 1},
			items: []models.TenderItem{
				{ID: 1, TenderID: 10, Name: "Paracetamol 500mg"},
				{ID: 2, TenderID: 10, Name: "Gauze"},
			},
		},
		ComparisonRepo: store,
	}
}

func TestCompareRanksByFinalPrice(t *testing.T) {
	early := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	store := &fakeComparisonStore{
		offers: []repositories.ComparisonOfferRow{
			offerRow(1, 101, 10.00, &early),
			offerRow(1, 102, 7.00, &early),
			offerRow(1, 103, 12.00, &early),
			offerRow(1, 104, 7.00, &late),
		},
	}
	svc := newComparisonService(store)

	result, err := svc.Compare(context.Background(), buyerClaims(), 10, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("want one row per tender item, got %d", len(result))
	}

	got := result[0].Suppliers
	wantOrder := []int{102, 104, 101, 103}
	if len(got) != len(wantOrder) {
		t.Fatalf("want %d suppliers, got %d", len(wantOrder), len(got))
	}
	for i, id := range wantOrder {
		if got[i].QuotationID != id {
			t.Fatalf("position %d: want quotation %d, got %d", i, id, got[i].QuotationID)
		}
	}
}

func TestCompareTieBreaksByQuotationID(t *testing.T) {
	at := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeComparisonStore{
		offers: []repositories.ComparisonOfferRow{
			offerRow(1, 105, 7.00, &at),
			offerRow(1, 103, 7.00, &at),
		},
	}
	svc := newComparisonService(store)

	result, err := svc.Compare(context.Background(), buyerClaims(), 10, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	suppliers := result[0].Suppliers
	if suppliers[0].QuotationID != 103 || suppliers[1].QuotationID != 105 {
		t.Fatalf("same price and time must order by quotation id: %+v", suppliers)
	}
}

func TestCompareTruncatesToTopN(t *testing.T) {
	store := &fakeComparisonStore{}
	for i := 0; i < 8; i++ {
		store.offers = append(store.offers, offerRow(1, 100+i, float64(i+1), nil))
	}
	svc := newComparisonService(store)

	result, err := svc.Compare(context.Background(), buyerClaims(), 10, 3)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(result[0].Suppliers) != 3 {
		t.Fatalf("want 3 suppliers after truncation, got %d", len(result[0].Suppliers))
	}

	result, err = svc.Compare(context.Background(), buyerClaims(), 10, 0)
	if err != nil {
		t.Fatalf("Compare with default topN: %v", err)
	}
	if len(result[0].Suppliers) != DefaultComparisonTopN {
		t.Fatalf("want default of %d suppliers, got %d", DefaultComparisonTopN, len(result[0].Suppliers))
	}
}

func TestCompareKeepsItemsWithoutBids(t *testing.T) {
	store := &fakeComparisonStore{
		offers: []repositories.ComparisonOfferRow{offerRow(1, 101, 5.00, nil)},
	}
	svc := newComparisonService(store)

	result, err := svc.Compare(context.Background(), buyerClaims(), 10, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result[1].Item.ID != 2 {
		t.Fatalf("item without bids missing from the result: %+v", result)
	}
	if result[1].Suppliers == nil || len(result[1].Suppliers) != 0 {
		t.Fatalf("want an empty, non-nil supplier list, got %#v", result[1].Suppliers)
	}
}

func TestCompareMarksSelectedOffer(t *testing.T) {
	store := &fakeComparisonStore{
		offers: []repositories.ComparisonOfferRow{
			offerRow(1, 101, 5.00, nil),
			offerRow(1, 102, 6.00, nil),
		},
		selections: []models.Selection{{TenderID: 10, TenderItemID: 1, QuotationID: 102}},
	}
	svc := newComparisonService(store)

	result, err := svc.Compare(context.Background(), buyerClaims(), 10, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	for _, offer := range result[0].Suppliers {
		if offer.QuotationID == 102 && !offer.IsSelected {
			t.Fatal("selected offer not flagged")
		}
		if offer.QuotationID == 101 && offer.IsSelected {
			t.Fatal("unselected offer flagged")
		}
	}
}

func TestCompareForbiddenForOtherAccount(t *testing.T) {
	svc := newComparisonService(&fakeComparisonStore{})

	other := models.Claims{UserID: 42, Type: models.TypeBuyer}
	if _, err := svc.Compare(context.Background(), other, 10, 0); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}
