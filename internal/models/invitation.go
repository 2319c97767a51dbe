package models

import "time"

// Invitation grants one email address access to one tender. The token is the
// credential for the public, tokenless-auth seller view and must be unique
// and unguessable per row.
type Invitation struct {
	ID                int       `json:"id"`
	TenderID          int       `json:"tender_id"`
	Email             string    `json:"email"`
	Token             string    `json:"invitation_token"`
	RequiredDocuments string    `json:"required_documents,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// InvitationSummary is one row of a seller's invitation listing.
type InvitationSummary struct {
	Invitation Invitation `json:"invitation"`
	Tender     Tender     `json:"tender"`
}

// PublicTenderView is what an invited seller sees when opening a tender via
// its invitation token, no login required.
type PublicTenderView struct {
	Invitation Invitation   `json:"invitation"`
	Tender     Tender       `json:"tender"`
	Items      []TenderItem `json:"items"`
}
