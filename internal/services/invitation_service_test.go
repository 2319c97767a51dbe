package services

import (
	"context"
	"testing"

	"procureBack/internal/models"
)

type fakeInvitationStore struct {
	invitations []models.Invitation

	lastEmails []string
}

func (f *fakeInvitationStore) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return models.Invitation{}, models.ErrNoRecord
}

func (f *fakeInvitationStore) FindByTenderAndEmails(ctx context.Context, tenderID int, emails []string) (models.Invitation, error) {
	f.lastEmails = emails
	for _, inv := range f.invitations {
		if inv.TenderID != tenderID {
			continue
		}
		for _, email := range emails {
			if inv.Email == email {
				return inv, nil
			}
		}
	}
	return models.Invitation{}, models.ErrNoRecord
}

func (f *fakeInvitationStore) ListByEmails(ctx context.Context, emails []string) ([]models.InvitationSummary, error) {
	f.lastEmails = emails
	var out []models.InvitationSummary
	for _, inv := range f.invitations {
		for _, email := range emails {
			if inv.Email == email {
				out = append(out, models.InvitationSummary{Invitation: inv})
			}
		}
	}
	return out, nil
}

type fakeAccountEmailStore struct {
	emails []string
}

func (f *fakeAccountEmailStore) AccountEmails(ctx context.Context, accountID int) ([]string, error) {
	return f.emails, nil
}

func TestResolveForAccountUsesFullRoster(t *testing.T) {
	store := &fakeInvitationStore{
		invitations: []models.Invitation{
			{ID: 3, TenderID: 10, Email: "colleague@one.test", Token: "tok-abc"},
		},
	}
	svc := &InvitationService{
		InvitationRepo: store,
		UserRepo:       &fakeAccountEmailStore{emails: []string{"owner@one.test", "colleague@one.test"}},
	}

	claims := models.Claims{UserID: 7, MainAccountID: 5, Email: "sub@one.test", Type: models.TypeSeller}
	inv, err := svc.ResolveForAccount(context.Background(), 10, claims)
	if err != nil {
		t.Fatalf("ResolveForAccount: %v", err)
	}
	if inv.ID != 3 {
		t.Fatalf("want invitation 3 via the colleague's email, got %+v", inv)
	}
	if len(store.lastEmails) != 3 || store.lastEmails[2] != "sub@one.test" {
		t.Fatalf("acting user's email must be part of the roster: %v", store.lastEmails)
	}
}

func TestAccountRosterDoesNotDuplicateActingEmail(t *testing.T) {
	store := &fakeInvitationStore{}
	svc := &InvitationService{
		InvitationRepo: store,
		UserRepo:       &fakeAccountEmailStore{emails: []string{"owner@one.test"}},
	}

	claims := models.Claims{UserID: 5, Email: "owner@one.test", Type: models.TypeSeller}
	if _, err := svc.MyInvitations(context.Background(), claims); err != nil {
		t.Fatalf("MyInvitations: %v", err)
	}
	if len(store.lastEmails) != 1 {
		t.Fatalf("roster must not repeat the acting email: %v", store.lastEmails)
	}
}

func TestPublicTenderView(t *testing.T) {
	svc := &InvitationService{
		InvitationRepo: &fakeInvitationStore{
			invitations: []models.Invitation{{ID: 3, TenderID: 10, Email: "seller@one.test", Token: "tok-abc"}},
		},
		TenderRepo: &fakeTenderReader{
			tender: models.Tender{ID: 10, AccountID: 1, Title: "Q3 supplies"},
			items:  []models.TenderItem{{ID: 1, TenderID: 10, Name: "Gauze"}},
		},
	}

	view, err := svc.PublicTenderView(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("PublicTenderView: %v", err)
	}
	if view.Tender.ID != 10 || len(view.Items) != 1 || view.Invitation.Token != "tok-abc" {
		t.Fatalf("incomplete view: %+v", view)
	}

	if _, err := svc.PublicTenderView(context.Background(), "unknown"); err != models.ErrNoRecord {
		t.Fatalf("unknown token: want ErrNoRecord, got %v", err)
	}
}
