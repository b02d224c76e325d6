// Package email sends transactional emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary
// (templates/emails/<name>.html).
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/docker-crm/internal/config"
)

//go:embed templates/emails/*.html
var templateFS embed.FS

// Client wraps the Resend client.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client, or returns nil when no Resend API key
// is configured. Callers treat a nil client as "sending disabled".
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("resend api key not set, emails will not be sent")
		return nil
	}

	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmplPath := fmt.Sprintf("templates/emails/%s.html", templateName)

	tmpl, err := template.ParseFS(templateFS, tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email accepted by provider")

	return nil
}
