package mailer

const (
	TemplateWelcome           = "welcome-email"
	TemplateTwoFactorEnabled  = "two-factor-enabled"
	TemplateTwoFactorDisabled = "two-factor-disabled"
	TemplatePasswordChanged   = "password-changed"
)

type Mailer interface {
	SendMail(to string, id string, data map[string]any) error
	SendMailAsync(to string, id string, data map[string]any, operationName string)
}
