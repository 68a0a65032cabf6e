package mailer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Message is a single outgoing e-mail with plain-text and HTML bodies.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Client sends mail over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

// NewClient initializes Client.
func NewClient(host string, port int, username, password, domain string) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		domain: domain,
	}
}

// Send delivers msg, returning the dial or SMTP error.
func (c *Client) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("Message-ID", generateMessageID(c.domain))
	m.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	m.SetAddressHeader("From", c.from, "Blog Platform")
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return c.dialer.DialAndSend(m)
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}

// AccountDeletion is sent when an administrator removes an account.
func AccountDeletion(to string) Message {
	return Message{
		To:      to,
		Subject: "Your Account Has Been Deleted",
		Text:    "Dear user,\n\nYour account has been deleted by the administrator. If you have any questions or concerns, please contact us.\n\nBest regards,\nThe Blog Team",
		HTML: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #333;">Account Deletion Notification</h2>
    <p>Dear user,</p>
    <p>We regret to inform you that your account has been deleted by the administrator.</p>
    <p>If you have any questions or concerns about this action, please don't hesitate to contact us.</p>
    <p>Best regards,<br>The Blog Team</p>
</div>`,
	}
}

// PasswordResetCode carries a one-time reset code valid for ttl.
func PasswordResetCode(to, name, code string, ttl time.Duration) Message {
	minutes := int(ttl.Minutes())
	return Message{
		To:      to,
		Subject: "Password Reset Code",
		Text:    fmt.Sprintf("Your password reset code is: %s. This code will expire in %d minutes.", code, minutes),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #333; text-align: center;">Password Reset Code</h2>
    <p>Hello %s,</p>
    <p>We received a request to reset your password. Your reset code is:</p>
    <div style="background-color: #f5f5f5; padding: 15px; text-align: center; margin: 20px 0;">
        <strong style="font-size: 24px; letter-spacing: 5px;">%s</strong>
    </div>
    <p>This code will expire in %d minutes.</p>
    <p>If you didn't request this, please ignore this email.</p>
</div>`, name, code, minutes),
	}
}
