package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"procureBack/internal/models"
)

type InvitationStore interface {
	GetByToken(ctx context.Context, token string) (models.Invitation, error)
	FindByTenderAndEmails(ctx context.Context, tenderID int, emails []string) (models.Invitation, error)
	ListByEmails(ctx context.Context, emails []string) ([]models.InvitationSummary, error)
}

type TenderReader interface {
	GetTenderByID(ctx context.Context, id int) (models.Tender, error)
	ItemsByTender(ctx context.Context, tenderID int) ([]models.TenderItem, error)
}

type AccountEmailStore interface {
	AccountEmails(ctx context.Context, accountID int) ([]string, error)
}

const publicViewCacheTTL = 5 * time.Minute

// InvitationService resolves invitations either by opaque token (public
// seller view) or by matching a tender against the full email roster of a
// seller account. The redis cache is best effort: a missing or unreachable
// cache falls through to the database.
type InvitationService struct {
	InvitationRepo InvitationStore
	TenderRepo     TenderReader
	UserRepo       AccountEmailStore
	Cache          *redis.Client
	ErrorLog       *log.Logger
}

func (s *InvitationService) ResolveByToken(ctx context.Context, token string) (models.Invitation, error) {
	return s.InvitationRepo.GetByToken(ctx, token)
}

// ResolveForAccount finds an invitation for the tender addressed to any email
// under the seller's main account. The acting user's own email is included
// defensively; the roster can have grown after the invitation was sent.
func (s *InvitationService) ResolveForAccount(ctx context.Context, tenderID int, claims models.Claims) (models.Invitation, error) {
	emails, err := s.accountRoster(ctx, claims)
	if err != nil {
		return models.Invitation{}, err
	}
	return s.InvitationRepo.FindByTenderAndEmails(ctx, tenderID, emails)
}

func (s *InvitationService) MyInvitations(ctx context.Context, claims models.Claims) ([]models.InvitationSummary, error) {
	emails, err := s.accountRoster(ctx, claims)
	if err != nil {
		return nil, err
	}
	return s.InvitationRepo.ListByEmails(ctx, emails)
}

// PublicTenderView is the tokenless-auth seller view: the token itself is the
// credential. An unknown token is a plain not-found.
func (s *InvitationService) PublicTenderView(ctx context.Context, token string) (models.PublicTenderView, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, publicViewCacheKey(token)).Bytes(); err == nil {
			var view models.PublicTenderView
			if err := json.Unmarshal(data, &view); err == nil {
				return view, nil
			}
		}
	}

	invitation, err := s.InvitationRepo.GetByToken(ctx, token)
	if err != nil {
		return models.PublicTenderView{}, err
	}
	tender, err := s.TenderRepo.GetTenderByID(ctx, invitation.TenderID)
	if err != nil {
		return models.PublicTenderView{}, err
	}
	items, err := s.TenderRepo.ItemsByTender(ctx, invitation.TenderID)
	if err != nil {
		return models.PublicTenderView{}, err
	}

	view := models.PublicTenderView{Invitation: invitation, Tender: tender, Items: items}

	if s.Cache != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := s.Cache.Set(ctx, publicViewCacheKey(token), data, publicViewCacheTTL).Err(); err != nil && s.ErrorLog != nil {
				s.ErrorLog.Printf("invitation cache set failed: %v", err)
			}
		}
	}
	return view, nil
}

func (s *InvitationService) accountRoster(ctx context.Context, claims models.Claims) ([]string, error) {
	emails, err := s.UserRepo.AccountEmails(ctx, claims.EffectiveAccountID())
	if err != nil {
		return nil, err
	}
	for _, email := range emails {
		if email == claims.Email {
			return emails, nil
		}
	}
	return append(emails, claims.Email), nil
}

func publicViewCacheKey(token string) string {
	return "invitation:" + token
}
