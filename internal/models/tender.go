package models

import "time"

const TenderStatusPublished = "published"

type Tender struct {
	ID                int        `json:"id"`
	AccountID         int        `json:"account_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Status            string     `json:"status"`
	RequiredDocuments string     `json:"required_documents,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type TenderItem struct {
	ID                int       `json:"id"`
	TenderID          int       `json:"tender_id"`
	AccountID         int       `json:"account_id"`
	Name              string    `json:"name"`
	Brand             string    `json:"brand,omitempty"`
	Origin            string    `json:"origin,omitempty"`
	Strength          string    `json:"strength,omitempty"`
	Unit              string    `json:"unit"`
	Quantity          float64   `json:"quantity"`
	AllowAlternatives bool      `json:"allow_alternatives"`
	CreatedAt         time.Time `json:"created_at"`
}

// TenderItemInput is an item as sent by the client. A zero ID marks a new
// item; a non-zero ID updates the stored item in place. Stored items whose
// ids are absent from the payload are deleted on update.
type TenderItemInput struct {
	ID                int     `json:"id,omitempty"`
	Name              string  `json:"name"`
	Brand             string  `json:"brand,omitempty"`
	Origin            string  `json:"origin,omitempty"`
	Strength          string  `json:"strength,omitempty"`
	Unit              string  `json:"unit"`
	Quantity          float64 `json:"quantity"`
	AllowAlternatives bool    `json:"allow_alternatives"`
}

type CreateTenderRequest struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	StartDate         *time.Time        `json:"start_date"`
	EndDate           *time.Time        `json:"end_date"`
	Items             []TenderItemInput `json:"items"`
	InvitedEmails     []string          `json:"invited_emails"`
	RequiredDocuments string            `json:"required_documents"`
}

type UpdateTenderRequest struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	StartDate         *time.Time        `json:"start_date"`
	EndDate           *time.Time        `json:"end_date"`
	Items             []TenderItemInput `json:"items"`
	InvitedEmails     []string          `json:"invited_emails"`
	RequiredDocuments string            `json:"required_documents"`
}

type TenderWithItems struct {
	Tender      Tender       `json:"tender"`
	Items       []TenderItem `json:"items"`
	Invitations []Invitation `json:"invitations,omitempty"`
}

// TenderItemDiff is the result of matching a revised item payload against the
// stored item set of a tender.
type TenderItemDiff struct {
	Update []TenderItem
	Insert []TenderItem
	Delete []int
}
