package services

import (
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"procureBack/internal/models"
)

// EmailService delivers invitation emails through SES. Delivery is best
// effort: failures are logged and dropped, the invitation row and token exist
// regardless of delivery success.
type EmailService struct {
	client   *ses.SES
	from     string
	baseURL  string
	errorLog *log.Logger
}

// NewEmailService returns nil without error when no sender address is
// configured; callers treat a nil mailer as "mail disabled".
func NewEmailService(from, baseURL, region string, errorLog *log.Logger) (*EmailService, error) {
	if from == "" {
		return nil, nil
	}
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return &EmailService{client: ses.New(sess), from: from, baseURL: baseURL, errorLog: errorLog}, nil
}

func (s *EmailService) SendInvitations(tender models.Tender, invitations []models.Invitation) {
	for _, inv := range invitations {
		if err := s.sendInvitation(tender, inv); err != nil && s.errorLog != nil {
			s.errorLog.Printf("invitation email to %s for tender %d failed: %v", inv.Email, tender.ID, err)
		}
	}
}

func (s *EmailService) sendInvitation(tender models.Tender, inv models.Invitation) error {
	subject := fmt.Sprintf("Invitation to quote: %s", tender.Title)
	link := fmt.Sprintf("%s/tenders/invitation/%s", s.baseURL, inv.Token)
	body := fmt.Sprintf(
		"You have been invited to submit a quotation for the tender %q.\n\nOpen the tender: %s\n",
		tender.Title, link,
	)
	if inv.RequiredDocuments != "" {
		body += fmt.Sprintf("\nRequired documents: %s\n", inv.RequiredDocuments)
	}

	_, err := s.client.SendEmail(&ses.SendEmailInput{
		Source:      aws.String(s.from),
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(inv.Email)}},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(subject)},
			Body:    &ses.Body{Text: &ses.Content{Data: aws.String(body)}},
		},
	})
	return err
}
