package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/harmonyhub/portal-api/internal/domain"
	"github.com/harmonyhub/portal-api/internal/infrastructure/resend"
	"github.com/harmonyhub/portal-api/internal/pkg/id"
)

// Service formats and dispatches every email the portal sends. Formatting
// and relaying live together so that no handler ever interpolates user input
// into markup itself.
type Service interface {
	AppointmentRequested(ctx context.Context, req domain.AppointmentRequest) error
	ContactMessage(ctx context.Context, req domain.ContactRequest) error
	VerificationCode(ctx context.Context, email, code string) error
	AccountRequested(ctx context.Context, req domain.RegisterRequest, approvalLink string) error
	DecisionNotice(ctx context.Context, email string, approved bool) error
}

type service struct {
	mailer  resend.Mailer
	siteURL string
}

func NewService(mailer resend.Mailer, siteURL string) Service {
	return &service{mailer: mailer, siteURL: siteURL}
}

func (s *service) AppointmentRequested(ctx context.Context, req domain.AppointmentRequest) error {
	ref := id.New()
	text := fmt.Sprintf(`New appointment request

Name: %s
Email: %s
Phone: %s

Service: %s
Appointment type: %s
Preferred date/time: %s

Client message:
%s

Client was instructed not to submit sensitive details (SIN, passport numbers, banking info).
Reference: %s`,
		req.FullName, req.Email, orNone(req.Phone),
		req.Service, req.AppointmentType, orNone(req.PreferredDateTime),
		orNone(req.Message), ref)

	var b strings.Builder
	b.WriteString(`<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">`)
	b.WriteString(`<h2 style="margin:0 0 10px">New appointment request</h2><table style="border-collapse:collapse">`)
	htmlRow(&b, "Name", req.FullName)
	htmlRow(&b, "Email", req.Email)
	htmlRow(&b, "Phone", orNone(req.Phone))
	htmlRow(&b, "Service", req.Service)
	htmlRow(&b, "Appointment type", req.AppointmentType)
	htmlRow(&b, "Preferred date/time", orNone(req.PreferredDateTime))
	b.WriteString(`</table><h3 style="margin:14px 0 6px">Client message</h3>`)
	fmt.Fprintf(&b, `<div style="white-space:pre-wrap;border:1px solid #e5e7eb;border-radius:10px;padding:10px;background:#fafafa">%s</div>`, html.EscapeString(orNone(req.Message)))
	fmt.Fprintf(&b, `<p style="color:#6b7280;margin-top:12px;font-size:12px">Reference: %s</p></div>`, ref)

	return s.mailer.Send(ctx, domain.Notification{
		Ref:     ref,
		ReplyTo: req.Email,
		Subject: "Appointment request: " + req.Service,
		Text:    text,
		HTML:    b.String(),
	})
}

func (s *service) ContactMessage(ctx context.Context, req domain.ContactRequest) error {
	ref := id.New()
	topic := req.Topic
	if topic == "" {
		topic = "General inquiry"
	}
	text := fmt.Sprintf(`New contact message

Name: %s
Email: %s
Phone: %s
Topic: %s

Message:
%s

Reference: %s`,
		req.FullName, req.Email, orNone(req.Phone), orNone(req.Topic), req.Message, ref)

	var b strings.Builder
	b.WriteString(`<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">`)
	b.WriteString(`<h2 style="margin:0 0 10px">New contact message</h2><table style="border-collapse:collapse">`)
	htmlRow(&b, "Name", req.FullName)
	htmlRow(&b, "Email", req.Email)
	htmlRow(&b, "Phone", orNone(req.Phone))
	htmlRow(&b, "Topic", orNone(req.Topic))
	b.WriteString(`</table><h3 style="margin:14px 0 6px">Message</h3>`)
	fmt.Fprintf(&b, `<div style="white-space:pre-wrap;border:1px solid #e5e7eb;border-radius:10px;padding:10px;background:#fafafa">%s</div>`, html.EscapeString(req.Message))
	fmt.Fprintf(&b, `<p style="color:#6b7280;margin-top:12px;font-size:12px">Reference: %s</p></div>`, ref)

	return s.mailer.Send(ctx, domain.Notification{
		Ref:     ref,
		ReplyTo: req.Email,
		Subject: "Website contact: " + topic,
		Text:    text,
		HTML:    b.String(),
	})
}

func (s *service) VerificationCode(ctx context.Context, email, code string) error {
	ref := id.New()
	text := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.\n\nIf you did not request an account, you can ignore this email.", code)
	htmlBody := fmt.Sprintf(`<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">
<h2 style="margin:0 0 16px;color:#1f2937">Confirm your email</h2>
<p style="margin:0 0 12px;color:#374151">Your verification code is:</p>
<p style="font-size:28px;letter-spacing:6px;font-weight:700;margin:0 0 16px">%s</p>
<p style="margin:0;color:#6b7280;font-size:13px">It expires in 15 minutes. If you did not request an account, you can ignore this email.</p>
</div>`, html.EscapeString(code))

	return s.mailer.Send(ctx, domain.Notification{
		Ref:     ref,
		To:      email,
		Subject: "Your verification code",
		Text:    text,
		HTML:    htmlBody,
	})
}

func (s *service) AccountRequested(ctx context.Context, req domain.RegisterRequest, approvalLink string) error {
	ref := id.New()
	text := fmt.Sprintf(`New account request

Name: %s
Email: %s
Phone: %s

Approve this account:
%s

Note: passwords are never included in email.
Reference: %s`,
		req.FullName, req.Email, orNone(req.Phone), approvalLink, ref)

	var b strings.Builder
	b.WriteString(`<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">`)
	b.WriteString(`<h2 style="margin:0 0 20px;color:#1f2937">New account request</h2><table style="border-collapse:collapse">`)
	htmlRow(&b, "Name", req.FullName)
	htmlRow(&b, "Email", req.Email)
	htmlRow(&b, "Phone", orNone(req.Phone))
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<div style="margin:24px 0;padding:16px;background:#ecfdf5;border-radius:12px;border-left:4px solid #10b981">
<a href="%s" style="display:inline-block;background:#0f766e;color:white;padding:10px 20px;text-decoration:none;border-radius:8px;font-weight:600">Approve Account</a>
</div>`, html.EscapeString(approvalLink))
	fmt.Fprintf(&b, `<p style="color:#6b7280;margin-top:20px;font-size:13px">The approval token is valid for 24 hours. Passwords are hashed and never included in email.<br>Reference: %s</p></div>`, ref)

	return s.mailer.Send(ctx, domain.Notification{
		Ref:     ref,
		ReplyTo: req.Email,
		Subject: "Account request: " + req.FullName,
		Text:    text,
		HTML:    b.String(),
	})
}

func (s *service) DecisionNotice(ctx context.Context, email string, approved bool) error {
	ref := id.New()
	if approved {
		signin := s.siteURL + "/signin.html"
		text := fmt.Sprintf(`Account approved

Great news! Your account request for %s has been approved.
You can now sign in to the client portal at %s

If you have any questions, reply to this email.`, email, signin)
		htmlBody := fmt.Sprintf(`<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">
<h2 style="margin:0 0 16px;color:#1f2937">Account approved</h2>
<p style="margin:0 0 20px;color:#374151">Great news! Your account request for <b>%s</b> has been approved. You can now sign in to the client portal.</p>
<div style="margin:24px 0;padding:16px;background:#f0fdf4;border-radius:12px;border-left:4px solid #10b981">
<a href="%s" style="color:#0f766e;font-weight:600;text-decoration:none">Sign in to your account</a>
</div>
</div>`, html.EscapeString(email), html.EscapeString(signin))

		return s.mailer.Send(ctx, domain.Notification{
			Ref:     ref,
			To:      email,
			Subject: "Your account has been approved",
			Text:    text,
			HTML:    htmlBody,
		})
	}

	text := `Account request update

Thank you for your interest. Unfortunately, your account request could not be approved at this time.

If you have any questions or would like to reapply, reply to this email.`
	htmlBody := `<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;line-height:1.45">
<h2 style="margin:0 0 16px;color:#1f2937">Account request update</h2>
<p style="margin:0 0 20px;color:#374151">Thank you for your interest. Unfortunately, your account request could not be approved at this time.</p>
<p style="margin:0 0 20px;color:#374151">If you have any questions or would like to reapply, reply to this email.</p>
</div>`

	return s.mailer.Send(ctx, domain.Notification{
		Ref:     ref,
		To:      email,
		Subject: "Account request status",
		Text:    text,
		HTML:    htmlBody,
	})
}

func htmlRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td style="padding:4px 10px 4px 0"><b>%s</b></td><td style="padding:4px 0">%s</td></tr>`,
		label, html.EscapeString(value))
}

func orNone(v string) string {
	if v == "" {
		return "(not provided)"
	}
	return v
}
