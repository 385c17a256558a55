package notify

import gomail "gopkg.in/gomail.v2"

// SMTPSender delivers mail over plain SMTP. Dial happens per message;
// the dispatcher's single worker keeps the rate low enough that a
// pooled connection is not worth the reconnect handling.
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s SMTPSender) Send(m Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", m.Recipients...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(msg)
}
