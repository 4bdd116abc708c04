package mail

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// TemplateMessageCommented notifies a message author about a new comment.
const TemplateMessageCommented = "message-commented"

// Config holds SMTP and app settings, passed in from app config.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	AppURL       string
}

// Sender renders a template and delivers it over SMTP.
type Sender interface {
	Send(ctx context.Context, template, recipient string, vars map[string]string) error
}

type smtpSender struct {
	cfg Config
}

func NewSender(cfg Config) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(ctx context.Context, template, recipient string, vars map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := render(template, vars, s.cfg.AppURL)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.FromEmail)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s mail: %w", template, err)
	}
	return nil
}

func render(template string, vars map[string]string, appURL string) (subject, body string, err error) {
	switch template {
	case TemplateMessageCommented:
		// Commenter name and excerpt are user-written text; escape them
		// before they land in an HTML body.
		commenter := html.EscapeString(vars["commenter"])
		excerpt := html.EscapeString(vars["excerpt"])
		subject = fmt.Sprintf("%s commented on your message", vars["commenter"])
		body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<p><strong>%s</strong> commented on your message:</p>
	<blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">%s</blockquote>
	<p><a href="%s/messages/%s">View the conversation</a></p>
</body>
</html>`, commenter, excerpt, appURL, vars["message_id"])
		return subject, body, nil
	default:
		return "", "", fmt.Errorf("unknown mail template %q", template)
	}
}
