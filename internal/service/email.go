package service

import (
	"context"
	"fmt"

	"bikeshop-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	fromName string
	fromAddr string
}

func NewEmailService(apiKey, fromName, fromAddr string) EmailService {
	return &emailService{apiKey: apiKey, fromName: fromName, fromAddr: fromAddr}
}

func (s *emailService) send(toAddr, toName, subject, body string) error {
	// An empty API key means email is switched off (local setups).
	if s.apiKey == "" {
		return nil
	}
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toAddr)
	msg := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

func euros(cents int32) string {
	return fmt.Sprintf("%.2f EUR", float64(cents)/100)
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nyour bike rental is booked from %s to %s (%d bike(s), %d day(s)).\nTotal price: %s, deposit: %s.\n\nSee you at the shop!",
		name, b.StartDate, b.EndDate, b.BookedUnits(), b.DayCount, euros(b.TotalPriceCents), euros(b.DepositCents))
	return s.send(email, name, "Your bike rental booking", body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name string, b *domain.Booking) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nyour bike rental from %s to %s has been cancelled.\nIf this was unexpected, please contact the shop.",
		name, b.StartDate, b.EndDate)
	return s.send(email, name, "Your bike rental was cancelled", body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nyour bike rental was due back on %s. Please return the bike(s) to the shop.\n\nThank you!",
		name, b.EndDate)
	return s.send(email, name, "Bike return overdue", body)
}
