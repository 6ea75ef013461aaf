package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Mailer sends booking notices through the SendGrid v3 HTTP API with a
// calendar invite attached. An empty API key turns it into a logging
// no-op so local development needs no credentials.
type Mailer struct {
	cfg    config.MailConfig
	client *http.Client
}

func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *Mailer) SendConfirmation(ctx context.Context, b *booking.Booking, rm *room.Room) error {
	ics, err := BuildInvite(b, rm, m.cfg.FromEmail, m.cfg.FromName)
	if err != nil {
		return errs.Wrap(err, "failed to build calendar invite")
	}

	subject := fmt.Sprintf("Booking Confirmed: %s on %s", roomLabel(b, rm), b.Date())
	body := fmt.Sprintf(
		"Your booking is confirmed.\n\nRoom: %s\nDate: %s\nTime: %s - %s\nBooking ID: %s\n\nA calendar invite is attached.\n",
		roomLabel(b, rm), b.Date(),
		b.Slot().Start().Format("15:04"), b.Slot().End().Format("15:04"),
		b.ID(),
	)
	return m.send(ctx, b.UserEmail(), subject, body, ics, "invite.ics")
}

func (m *Mailer) SendCancellation(ctx context.Context, b *booking.Booking, rm *room.Room) error {
	ics, err := BuildCancellation(b, rm, m.cfg.FromEmail, m.cfg.FromName)
	if err != nil {
		return errs.Wrap(err, "failed to build calendar cancellation")
	}

	subject := fmt.Sprintf("Booking Cancelled: %s on %s", roomLabel(b, rm), b.Date())
	body := fmt.Sprintf(
		"Your booking has been cancelled.\n\nRoom: %s\nDate: %s\nTime: %s - %s\nBooking ID: %s\n",
		roomLabel(b, rm), b.Date(),
		b.Slot().Start().Format("15:04"), b.Slot().End().Format("15:04"),
		b.ID(),
	)
	return m.send(ctx, b.UserEmail(), subject, body, ics, "cancellation.ics")
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

type sgMail struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	Attachments      []sgAttachment      `json:"attachments,omitempty"`
}

func (m *Mailer) send(ctx context.Context, to, subject, body, ics, filename string) error {
	if m.cfg.SendGridAPIKey == "" {
		slog.Info("mail disabled, skipping notification", "to", to, "subject", subject)
		return nil
	}

	payload := sgMail{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: to}}}},
		From:             sgAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		Subject:          subject,
		Content:          []sgContent{{Type: "text/plain", Value: body}},
		Attachments: []sgAttachment{{
			Content:     base64.StdEncoding.EncodeToString([]byte(ics)),
			Type:        "text/calendar",
			Filename:    filename,
			Disposition: "attachment",
		}},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridEndpoint, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build mail request")
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.SendGridAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "failed to send mail request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.New(fmt.Sprintf("sendgrid returned %d: %s", resp.StatusCode, detail))
	}

	slog.Info("notification sent", "to", to, "subject", subject)
	return nil
}
