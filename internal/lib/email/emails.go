package email

import "context"

// SendCustomerWelcomeEmail greets a newly registered customer.
func (c *Client) SendCustomerWelcomeEmail(ctx context.Context, to, name string) error {
	data := map[string]string{
		"CustomerName": name,
	}

	return c.SendEmail(
		ctx,
		to,
		"Welcome to Docker CRM",
		TemplateWelcome,
		data,
	)
}
