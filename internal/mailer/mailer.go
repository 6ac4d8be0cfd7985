package mailer

import (
	"fmt"
	"log"
	"net/url"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host            string
	port            int
	username        string
	password        string
	senderName      string
	confirmationURL string
}

func New(host string, port int, username, password, senderName, confirmationURL string) *Mailer {
	return &Mailer{
		host:            host,
		port:            port,
		username:        username,
		password:        password,
		senderName:      senderName,
		confirmationURL: confirmationURL,
	}
}

// SendConfirmation отправляет письмо со ссылкой подтверждения аккаунта.
// Ошибки только логируются: регистрация не должна падать из-за SMTP
func (m *Mailer) SendConfirmation(to, token string) {
	urlVal := url.Values{}
	urlVal.Set("token", token)
	body := fmt.Sprintf(`
	<div>
		<p>Click link below to verify your account</p>
		<p>%s</p>
	</div>
	`, m.confirmationURL+"?"+urlVal.Encode())

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your account - Talkbox")
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
		return
	}
	log.Printf("Confirmation email sent to %s", to)
}
