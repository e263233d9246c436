package services

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"lala-site-api/internal/config"
	"lala-site-api/internal/logger"
	"lala-site-api/internal/telemetry"
	"lala-site-api/models"
)

const (
	operatorSubject  = "【お問い合わせ】新規お問い合わせがありました"
	autoReplySubject = "【うらないLaLa】お問い合わせありがとうございます"

	phonePlaceholder = "未入力"
	planPlaceholder  = "鑑定時に相談"
)

var operatorBodyTemplate = template.Must(template.New("operator").Parse(`お名前: {{.Name}}
メールアドレス: {{.Email}}
電話番号: {{.Phone}}
ご希望プラン: {{.Plan}}
返信方法: {{.ReplyMethod}}

お問い合わせ内容:
{{.Message}}`))

var autoReplyBodyTemplate = template.Must(template.New("autoreply").Parse(`{{.Name}} 様

この度はお問い合わせいただき、誠にありがとうございます。
以下の内容でお問い合わせを受け付けいたしました。

─────────────────────────
お名前: {{.Name}}
メールアドレス: {{.Email}}
電話番号: {{.Phone}}
ご希望プラン: {{.Plan}}
ご希望の返信方法: {{.ReplyMethodLabel}}

お問い合わせ内容:
{{.Message}}
─────────────────────────

内容を確認次第、担当者よりご連絡させていただきます。
今しばらくお待ちくださいませ。

※このメールは自動送信されています。
※本メールにお心当たりがない場合は、お手数ですが破棄してください。

──────────────────
うらないLaLa`))

type contactMailData struct {
	Name             string
	Email            string
	Phone            string
	Plan             string
	ReplyMethod      string
	ReplyMethodLabel string
	Message          string
}

// ContactService relays one form submission as two sequential dispatches:
// an operator notification, then a customer acknowledgement. The first
// failure aborts; both collapse to one generic error at the endpoint.
type ContactService struct {
	cfg     *config.Config
	mailer  Mailer
	metrics *telemetry.Metrics
}

func NewContactService(cfg *config.Config, mailer Mailer, metrics *telemetry.Metrics) *ContactService {
	return &ContactService{cfg: cfg, mailer: mailer, metrics: metrics}
}

func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) error {
	operatorBody, err := ComposeOperatorNotification(sub)
	if err != nil {
		return fmt.Errorf("failed to compose operator notification: %w", err)
	}
	autoReplyBody, err := ComposeAcknowledgement(sub)
	if err != nil {
		return fmt.Errorf("failed to compose acknowledgement: %w", err)
	}

	// Operator notification, with the visitor as reply-to so the operator
	// can answer directly from their inbox.
	err = s.mailer.Send(ctx, Email{
		From:    s.cfg.ContactFromEmail,
		To:      s.cfg.ContactToEmail,
		ReplyTo: sub.Email,
		Subject: operatorSubject,
		Text:    operatorBody,
	})
	if err != nil {
		logger.Error("Operator notification dispatch failed", "error", err)
		return fmt.Errorf("operator notification: %w", err)
	}
	s.recordDispatch(ctx, "operator")

	// Customer acknowledgement.
	err = s.mailer.Send(ctx, Email{
		From:    s.cfg.ContactFromEmail,
		To:      sub.Email,
		Subject: autoReplySubject,
		Text:    autoReplyBody,
	})
	if err != nil {
		logger.Error("Acknowledgement dispatch failed", "error", err, "to", sub.Email)
		return fmt.Errorf("acknowledgement: %w", err)
	}
	s.recordDispatch(ctx, "acknowledgement")

	return nil
}

func (s *ContactService) recordDispatch(ctx context.Context, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.EmailsSent.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// ComposeOperatorNotification renders the body sent to the operator address.
func ComposeOperatorNotification(sub models.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	if err := operatorBodyTemplate.Execute(&buf, newContactMailData(sub)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ComposeAcknowledgement renders the auto-reply body sent to the visitor.
func ComposeAcknowledgement(sub models.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	if err := autoReplyBodyTemplate.Execute(&buf, newContactMailData(sub)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newContactMailData(sub models.ContactSubmission) contactMailData {
	data := contactMailData{
		Name:             sub.Name,
		Email:            sub.Email,
		Phone:            sub.Phone,
		Plan:             sub.Plan,
		ReplyMethod:      sub.ReplyMethod,
		ReplyMethodLabel: replyMethodLabel(sub.ReplyMethod),
		Message:          sub.Message,
	}
	if data.Phone == "" {
		data.Phone = phonePlaceholder
	}
	if data.Plan == "" {
		data.Plan = planPlaceholder
	}
	return data
}

func replyMethodLabel(method string) string {
	switch method {
	case models.ReplyMethodEmail:
		return "メール"
	case models.ReplyMethodPhone:
		return "電話"
	default:
		return "どちらでも可"
	}
}
