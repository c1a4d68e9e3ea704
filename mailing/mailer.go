package mailing

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"html/template"

	"github.com/go-mail/mail"
	"github.com/jaytaylor/html2text"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
)

type Mailer struct {
	noop          bool
	client        *mail.Dialer
	log           *zap.Logger
	cfg           *config.Configuration
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["site"] = m.cfg.Behaviour.Site
	b["title"] = title
	b["message"] = message
	return b
}

// SendInviteMail delivers the invite link for a trip. The link lands on
// the invite page of the frontend which validates the token.
func (m *Mailer) SendInviteMail(email string, token string, tripName string, hostName string) error {
	if m.noop {
		m.log.Info("skipping email `Invite` because noop is configured")
		return nil
	}
	title := fmt.Sprintf("You are invited to %s", tripName)
	message := fmt.Sprintf(
		"%s invited you to plan and join the trip \"%s\" on %s.",
		hostName,
		tripName,
		m.cfg.Behaviour.Name,
	)
	base := m.baseModel(title, message)
	base["link_text"] = "View the invitation"
	base["link"] = fmt.Sprintf("%s/invite/%s", m.cfg.Behaviour.Site, token)
	base["token_text"] = "Or paste this invite code"
	base["token"] = token
	base["subject"] = title
	return m.send(email, title, base)
}

// SendWelcomeMail greets a freshly registered user.
func (m *Mailer) SendWelcomeMail(email string, fullName string) error {
	if m.noop {
		m.log.Info("skipping email `Welcome` because noop is configured")
		return nil
	}
	title := fmt.Sprintf("Welcome to %s", m.cfg.Behaviour.Name)
	message := fmt.Sprintf(
		"Hi %s, your account is ready. Create a trip or join one you were invited to.",
		fullName,
	)
	base := m.baseModel(title, message)
	base["link_text"] = "Open your trips"
	base["link"] = fmt.Sprintf("%s/trips", m.cfg.Behaviour.Site)
	base["token_text"] = ""
	base["token"] = ""
	base["subject"] = title
	return m.send(email, title, base)
}

func (m *Mailer) SendTestEmail(email string) error {
	base := m.baseModel("This is a test", "hey your email confirugation seems to be fine.")
	base["subject"] = "Your test email is here!"
	base["token"] = "test"
	base["token_text"] = "test"
	base["link"] = "w"
	base["link_text"] = "test"
	return m.send(email, "Your test email is here!", base)
}

func (m *Mailer) send(email string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	return m.client.DialAndSend(msg)
}

func NewMailer(
	log *zap.Logger,
	cfg *config.Configuration,
	files fs.FS,
) (*Mailer, error) {

	t, err := template.ParseFS(files, "template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          !cfg.SMTP.Enabled,
		log:           log,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer() *Mailer {
	s := &Mailer{
		noop: true,
		log:  zap.NewNop(),
	}
	return s
}
