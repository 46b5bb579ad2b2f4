// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"
	"os"

	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/email/templates"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendProspectAlertEmail(toEmail, visitorID, campaignTitle, room string, matchedPages []string) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client       *resend.Client
	fromEmail    string
	fromName     string
	dashboardURL string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := os.Getenv("ALERT_EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "noreply@roomreach.com" // Default from address
	}

	fromName := os.Getenv("ALERT_EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "RoomReach" // Default from name
	}

	return &ResendClient{
		client:       resend.NewClient(apiKey),
		fromEmail:    fromEmail,
		fromName:     fromName,
		dashboardURL: os.Getenv("DASHBOARD_URL"),
	}, nil
}

// SendProspectAlertEmail composes and sends the prospect promotion alert.
func (c *ResendClient) SendProspectAlertEmail(toEmail, visitorID, campaignTitle, room string, matchedPages []string) error {
	subject := fmt.Sprintf("New prospect on %s", campaignTitle)

	content := templates.GetProspectAlertContent(templates.ProspectAlertProps{
		VisitorID:     visitorID,
		CampaignTitle: campaignTitle,
		Room:          room,
		MatchedPages:  matchedPages,
		DashboardURL:  c.dashboardURL,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: subject,
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send prospect alert email via Resend: %w", err)
	}

	return nil
}
