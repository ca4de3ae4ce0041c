package service

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, toEmail, toName, rentalCode string, returnDate time.Time) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	subject := fmt.Sprintf("Overdue rental reminder: %s", rentalCode)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nRental %s was due back on %s and has not been returned yet. "+
			"Please arrange the return or contact us to extend the rental.\n\nThank you.",
		toName, rentalCode, returnDate.Format("January 2, 2006"),
	)
	htmlContent := fmt.Sprintf(
		"<p>Hello %s,</p><p>Rental <strong>%s</strong> was due back on <strong>%s</strong> "+
			"and has not been returned yet. Please arrange the return or contact us to extend the rental.</p><p>Thank you.</p>",
		toName, rentalCode, returnDate.Format("January 2, 2006"),
	)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected overdue reminder with status %d: %s", response.StatusCode, response.Body)
	}

	logger.Info("Overdue reminder sent", "rental_code", rentalCode, "to", toEmail)
	return nil
}
