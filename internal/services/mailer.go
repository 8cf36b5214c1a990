package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/config"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// Mailer delivers login codes and trip confirmations to users.
type Mailer interface {
	SendOTP(toEmail, code string) error
	SendTripConfirmation(toEmail string, trip *models.Trip) error
}

// NewMailer picks the mailer for the configured delivery mode. SMTP needs
// credentials; everything else logs instead of sending.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.OTPDelivery == "smtp" && cfg.SMTPUser != "" {
		return &SMTPMailer{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			user:     cfg.SMTPUser,
			password: cfg.SMTPPassword,
		}
	}
	return &LogMailer{}
}

// LogMailer is the default stand-in for real delivery: the code is already
// logged by the OTP service, so this only records that a send happened.
type LogMailer struct{}

func (m *LogMailer) SendOTP(toEmail, code string) error {
	log.Printf("📧 [log mailer] OTP email to %s suppressed", toEmail)
	return nil
}

func (m *LogMailer) SendTripConfirmation(toEmail string, trip *models.Trip) error {
	log.Printf("📧 [log mailer] trip confirmation to %s suppressed (trip %s)", toEmail, trip.ID)
	return nil
}

// SMTPMailer sends HTML mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
}

func (m *SMTPMailer) SendOTP(toEmail, code string) error {
	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h1 style="color:#667eea;">✈️ TravelBuddy</h1>
<h2>Your Login Code</h2>
<p>Use this code to complete your login:</p>
<div style="font-size:36px;font-weight:bold;letter-spacing:8px;">%s</div>
<p>If you didn't request this code, please ignore this email.</p>
</body></html>`, code)

	return m.send(toEmail, "Your Travel Planner OTP", body)
}

func (m *SMTPMailer) SendTripConfirmation(toEmail string, trip *models.Trip) error {
	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h1 style="color:#667eea;">🎉 Booking Confirmed!</h1>
<h2>Trip to %s</h2>
<p><strong>Duration:</strong> %d days</p>
<p><strong>Travelers:</strong> %d person(s)</p>
<p><strong>Total Budget:</strong> ₹%.0f</p>
<p>Your trip plan is ready! Check your dashboard for the full itinerary.</p>
</body></html>`, trip.Destination, trip.Days, trip.Members, trip.Budget)

	return m.send(toEmail, "Trip Booking Confirmed - "+trip.Destination, body)
}

func (m *SMTPMailer) send(toEmail, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.user, toEmail, subject, htmlBody)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
