package mailer

import (
	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"
)

type resendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendMailer(apiKey string, from string, log *zap.Logger) Mailer {
	client := resend.NewClient(apiKey)
	return &resendMailer{client: client, from: from, log: log}
}

func (r *resendMailer) SendMail(to string, id string, data map[string]any) error {
	params := &resend.SendEmailRequest{
		From: r.from,
		To:   []string{to},
		Template: &resend.EmailTemplate{
			Id:        id,
			Variables: data,
		},
	}

	_, err := r.client.Emails.Send(params)
	return err
}

func (r *resendMailer) SendMailAsync(to string, id string, data map[string]any, operationName string) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("panic in email goroutine", zap.String("operation", operationName), zap.Any("panic", rec))
			}
		}()

		if err := r.SendMail(to, id, data); err != nil {
			r.log.Error("failed to send email",
				zap.String("operation", operationName),
				zap.String("to", to),
				zap.String("template", id),
				zap.Error(err),
			)
		}
	}()
}

// NopMailer drops every message. Used when no mail provider is configured.
type NopMailer struct{}

func (NopMailer) SendMail(string, string, map[string]any) error { return nil }
func (NopMailer) SendMailAsync(string, string, map[string]any, string) {}
