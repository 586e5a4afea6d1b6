package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(conversationID, customerPhone, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	alertEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, alertEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		alertEmail:  alertEmail,
	}
}

func (s *emailService) SendEscalationAlert(conversationID, customerPhone, reason string) error {
	if s.alertEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.alertEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Escalation] Perbualan %s memerlukan pegawai", conversationID))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Eskalasi Baharu</h2>
			<p>Satu perbualan WhatsApp telah diserahkan kepada pegawai.</p>
			<table cellpadding="6">
				<tr><td><b>Perbualan</b></td><td>%s</td></tr>
				<tr><td><b>Nombor pelanggan</b></td><td>%s</td></tr>
				<tr><td><b>Sebab</b></td><td>%s</td></tr>
			</table>
			<p>Sila ambil alih melalui papan pemuka ejen.</p>
		</div>
	`, conversationID, customerPhone, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert for %s: %v\n", conversationID, err)
		return err
	}

	return nil
}
