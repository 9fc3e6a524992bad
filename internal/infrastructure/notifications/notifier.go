package notifications

import "github.com/logeshwaran0404/Albany-VSM-sub001/domain"

// Notifier implements domain.NotificationService by routing SMS to Twilio
// and email to SMTP.
type Notifier struct {
	sms   *TwilioSMSSender
	email *SMTPEmailSender
}

// NewNotifier creates the composite notification service.
func NewNotifier(sms *TwilioSMSSender, email *SMTPEmailSender) domain.NotificationService {
	return &Notifier{sms: sms, email: email}
}

// SendSMS implements domain.NotificationService
func (n *Notifier) SendSMS(to, message string) error {
	return n.sms.SendSMS(to, message)
}

// SendEmail implements domain.NotificationService
func (n *Notifier) SendEmail(to, subject, body string) error {
	return n.email.SendEmail(to, subject, body)
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*Notifier)(nil)
