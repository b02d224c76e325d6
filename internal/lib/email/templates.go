package email

// Template names an embedded email template.
type Template string

const (
	// TemplateWelcome is templates/emails/welcome.html.
	TemplateWelcome Template = "welcome"
)
