package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/pkg/logger"
)

// Template keys understood by the mailers
const (
	TemplatePasswordReset = "password_reset"
)

type rendered struct {
	subject string
	plain   string
	html    string
}

var templates = map[string]func(data map[string]string) rendered{
	TemplatePasswordReset: func(data map[string]string) rendered {
		code := data["code"]
		return rendered{
			subject: "Seu código de recuperação de senha",
			plain: fmt.Sprintf("Olá %s, seu código para redefinir a senha é %s. Ele expira em %s minutos. "+
				"Se você não pediu a troca, ignore este email.", data["name"], code, data["ttlMinutes"]),
			html: fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2c3e50;">Recuperação de senha</h2>
			<p>Olá %s,</p>
			<p>Use o código abaixo para redefinir sua senha. Ele expira em %s minutos.</p>
			<p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">%s</p>
			<p>Se você não pediu a troca, ignore este email.</p>
		</div>
        `, data["name"], data["ttlMinutes"], code),
		}
	},
}

// deliver is swapped in tests; it returns the provider status code
var deliver = func(apiKey string, message *sgmail.SGMailV3) (int, string, error) {
	resp, err := sendgrid.NewSendClient(apiKey).Send(message)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode, resp.Body, nil
}

// SendGridMailer delivers templated emails through SendGrid
type SendGridMailer struct {
	apiKey string
	from   *sgmail.Email
}

// NewSendGridMailer creates a mailer bound to the sender identity in cfg
func NewSendGridMailer(cfg config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		apiKey: cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

// Send renders template for to and hands it to SendGrid
func (m *SendGridMailer) Send(ctx context.Context, template, to string, data map[string]string) error {
	render, ok := templates[template]
	if !ok {
		return fmt.Errorf("unknown email template %q", template)
	}
	r := render(data)

	message := sgmail.NewSingleEmail(m.from, r.subject, sgmail.NewEmail(data["name"], to), r.plain, r.html)
	status, body, err := deliver(m.apiKey, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if status >= 300 {
		logger.Warn(ctx, "SendGrid rejected email", zap.Int("status", status), zap.String("body", body))
		return fmt.Errorf("failed to send email: provider status %d", status)
	}
	return nil
}

// LogMailer only records that an email would have been sent
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, template, to string, _ map[string]string) error {
	if _, ok := templates[template]; !ok {
		return fmt.Errorf("unknown email template %q", template)
	}
	logger.Info(ctx, "Email delivery disabled, message dropped",
		zap.String("template", template),
		zap.String("to", to),
	)
	return nil
}
