package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/pacificpay/payroll-backend-go/internal/config"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Service delivers approval links out-of-band. The link (and its token) goes
// only to the configured recipient; it never appears in logs.
type Service interface {
	NotifyApprovalRequested(batch wage.ApprovalBatch, approvalURL string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type approvalEmailData struct {
	SubjectType string
	PeriodStart string
	PeriodEnd   string
	InitiatedBy string
	ApprovalURL string
}

// NotifyApprovalRequested emails the approval link for a freshly created
// batch to the configured approver.
func (s *emailServiceImpl) NotifyApprovalRequested(batch wage.ApprovalBatch, approvalURL string) error {
	if s.cfg.ApprovalRecipient == "" {
		return nil
	}

	data := approvalEmailData{
		SubjectType: string(batch.SubjectType),
		PeriodStart: batch.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   batch.PeriodEnd.Format("2006-01-02"),
		InitiatedBy: batch.InitiatedBy,
		ApprovalURL: approvalURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "approval_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Approval requested: %s %s to %s", data.SubjectType, data.PeriodStart, data.PeriodEnd)
	return s.sendHTML(s.cfg.ApprovalRecipient, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
