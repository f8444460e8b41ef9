package intake

import (
	"context"
	"strings"
	"time"

	"github.com/harmonyhub/portal-api/internal/application/notification"
	"github.com/harmonyhub/portal-api/internal/domain"
	"github.com/harmonyhub/portal-api/internal/pkg/normalize"
	"github.com/harmonyhub/portal-api/internal/pkg/spam"
	"github.com/harmonyhub/portal-api/internal/pkg/validate"
)

// Service turns raw form payloads into dispatched notifications. Sending the
// email is the entire purpose of these endpoints, so a dispatch failure is
// fatal to the request.
type Service interface {
	Appointment(ctx context.Context, raw map[string]any) error
	Contact(ctx context.Context, raw map[string]any) error
}

// Booking notes never legitimately contain links; contact messages get the
// milder scored filter.
var (
	appointmentSpamPolicy = spam.Policy{MinElapsed: 1800 * time.Millisecond, RejectAnyLink: true}
	contactSpamPolicy     = spam.Policy{MinElapsed: 1500 * time.Millisecond}
)

type service struct {
	notifier notification.Service
	now      func() time.Time
}

func NewService(notifier notification.Service) Service {
	return &service{notifier: notifier, now: time.Now}
}

func (s *service) Appointment(ctx context.Context, raw map[string]any) error {
	req := domain.AppointmentRequest{
		FullName:          normalize.Clamp(normalize.First(raw, "fullName", "clientName", "name"), 120),
		Email:             normalize.Clamp(normalize.First(raw, "email", "clientEmail"), 254),
		Phone:             normalize.Clamp(normalize.First(raw, "phone", "clientPhone"), 40),
		Service:           normalize.Clamp(normalize.First(raw, "service", "serviceSelected"), 180),
		AppointmentType:   normalize.Clamp(normalize.First(raw, "appointmentType", "appointment_mode"), 80),
		PreferredDateTime: normalize.Clamp(normalize.First(raw, "preferredDateTime", "preferred", "dateTime"), 80),
		Message:           normalize.Clamp(normalize.First(raw, "message", "serviceMessage", "notes"), 4000),
	}
	otherService := normalize.Clamp(normalize.First(raw, "otherService", "otherServiceText"), 180)

	if req.FullName == "" {
		return domain.Invalid("Full name is required.")
	}
	if !normalize.ValidEmail(req.Email) {
		return domain.Invalid("Valid email is required.")
	}
	if strings.EqualFold(req.Service, "Other") {
		if otherService == "" {
			return domain.Invalid("Please describe the service under 'Other'.")
		}
		req.Service = "Other - " + otherService
	}
	if req.Service == "" {
		return domain.Invalid("Service is required.")
	}
	if req.AppointmentType == "" {
		return domain.Invalid("Appointment type is required.")
	}
	if err := validate.Struct(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	if err := spam.Evaluate(spamFields(raw, req.Message), appointmentSpamPolicy, s.now()); err != nil {
		return err
	}

	return s.notifier.AppointmentRequested(ctx, req)
}

func (s *service) Contact(ctx context.Context, raw map[string]any) error {
	req := domain.ContactRequest{
		FullName: normalize.Clamp(normalize.First(raw, "fullName", "clientName", "name"), 120),
		Email:    normalize.Clamp(normalize.First(raw, "email", "clientEmail"), 254),
		Phone:    normalize.Clamp(normalize.First(raw, "phone", "clientPhone"), 40),
		Topic:    normalize.Clamp(normalize.First(raw, "topic", "subject"), 120),
		Message:  normalize.Clamp(normalize.First(raw, "message"), 4000),
	}

	if req.FullName == "" {
		return domain.Invalid("Full name is required.")
	}
	if !normalize.ValidEmail(req.Email) {
		return domain.Invalid("Valid email is required.")
	}
	if req.Message == "" {
		return domain.Invalid("Message is required.")
	}
	if err := validate.Struct(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	if err := spam.Evaluate(spamFields(raw, req.Message), contactSpamPolicy, s.now()); err != nil {
		return err
	}

	return s.notifier.ContactMessage(ctx, req)
}

func spamFields(raw map[string]any, message string) spam.Fields {
	return spam.Fields{
		Honeypot:  normalize.Clamp(normalize.First(raw, "hp", "website", "company", "address2"), 200),
		StartedAt: normalize.Number(raw, "startedAt", "formStartedAt", "_startedAt"),
		Message:   message,
	}
}
