package email

import "fmt"

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"CustomerName": "Ann",
	},
}

// Preview renders templateName with its sample data.
func Preview(templateName Template) (string, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", templateName)
	}
	return Render(templateName, data)
}
