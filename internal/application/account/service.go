package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/harmonyhub/portal-api/internal/application/notification"
	"github.com/harmonyhub/portal-api/internal/domain"
	jwtinfra "github.com/harmonyhub/portal-api/internal/infrastructure/jwt"
	"github.com/harmonyhub/portal-api/internal/pkg/normalize"
	"github.com/harmonyhub/portal-api/internal/pkg/token"
	"github.com/harmonyhub/portal-api/internal/pkg/validate"
)

const (
	codeDigits = 6
	codeTTL    = 15 * time.Minute
	// How long an approval token stays valid. Recorded on the decision but
	// not yet enforced at login; see DESIGN.md.
	approvalTTL = 24 * time.Hour
)

// VerificationStore is the pending-code side of the lifecycle.
type VerificationStore interface {
	Put(email string, v domain.PendingVerification)
	Get(email string) (domain.PendingVerification, bool)
	Delete(email string)
}

// ApprovalStore is the admin-decision side of the lifecycle.
type ApprovalStore interface {
	Put(email string, rec domain.ApprovalRecord)
	Get(email string) (domain.ApprovalRecord, bool)
}

// VerifiedSet records emails that completed the code flow.
type VerifiedSet interface {
	Add(email string, at time.Time)
	Contains(email string) bool
}

// SessionResult is what a successful login returns.
type SessionResult struct {
	Token     string
	Email     string
	ExpiresIn int // seconds
}

// DecisionResult reports the recorded outcome of an admin action.
type DecisionResult struct {
	Email    string
	Approved bool
}

// Service drives both account lifecycle tracks: the self-service
// email-verification track and the admin approval track. The two tracks are
// independent by design of the original system; login consults only the
// approval track plus the static allow-list.
type Service interface {
	Register(ctx context.Context, raw map[string]any) error
	Verify(ctx context.Context, email, code string) error
	Status(ctx context.Context, email string) (domain.AccountStatus, error)
	Decide(ctx context.Context, email, approvalToken, action string) (DecisionResult, error)
	Login(ctx context.Context, email, password string) (SessionResult, error)
}

// ServiceDeps bundles the service's collaborators.
type ServiceDeps struct {
	Verifications VerificationStore
	Approvals     ApprovalStore
	Verified      VerifiedSet
	Notifier      notification.Service
	Sessions      *jwtinfra.Provider // nil when no session secret is configured
	SiteURL       string
	AuthPassword  string
	AllowedUsers  []string
}

type service struct {
	verifications VerificationStore
	approvals     ApprovalStore
	verified      VerifiedSet
	notifier      notification.Service
	sessions      *jwtinfra.Provider
	siteURL       string
	authPassword  string
	allowedUsers  map[string]struct{}
	now           func() time.Time
}

func NewService(deps ServiceDeps) Service {
	allowed := make(map[string]struct{}, len(deps.AllowedUsers))
	for _, e := range deps.AllowedUsers {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &service{
		verifications: deps.Verifications,
		approvals:     deps.Approvals,
		verified:      deps.Verified,
		notifier:      deps.Notifier,
		sessions:      deps.Sessions,
		siteURL:       deps.SiteURL,
		authPassword:  deps.AuthPassword,
		allowedUsers:  allowed,
		now:           time.Now,
	}
}

func (s *service) Register(ctx context.Context, raw map[string]any) error {
	req := domain.RegisterRequest{
		FullName: normalize.Clamp(normalize.First(raw, "fullName", "name"), 120),
		Email:    normalize.Email(normalize.First(raw, "email")),
		Phone:    normalize.Clamp(normalize.First(raw, "phone"), 40),
		Password: normalize.Clamp(normalize.First(raw, "password"), 120),
	}

	if req.FullName == "" {
		return domain.Invalid("Full name is required.")
	}
	if !normalize.ValidEmail(req.Email) {
		return domain.Invalid("Valid email is required.")
	}
	if len(req.Password) < 8 {
		return domain.Invalid("Password must be at least 8 characters.")
	}
	if err := validate.Struct(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, err := token.NewCode(codeDigits)
	if err != nil {
		return err
	}
	approvalToken, err := token.NewApprovalToken()
	if err != nil {
		return err
	}

	// Re-registering overwrites any outstanding code: implicit resend.
	s.verifications.Put(req.Email, domain.PendingVerification{
		Code:      code,
		ExpiresAt: s.now().Add(codeTTL),
		Profile: domain.Profile{
			FullName:     req.FullName,
			Phone:        req.Phone,
			PasswordHash: string(hash),
		},
	})

	approvalLink := fmt.Sprintf("%s/api/auth/approve?token=%s&email=%s",
		s.siteURL, approvalToken, url.QueryEscape(req.Email))

	// Both sends are the point of registering; either failure fails the call.
	if err := s.notifier.VerificationCode(ctx, req.Email, code); err != nil {
		return err
	}
	return s.notifier.AccountRequested(ctx, req, approvalLink)
}

func (s *service) Verify(ctx context.Context, email, code string) error {
	email = normalize.Email(email)
	if !normalize.ValidEmail(email) {
		return domain.Invalid("Valid email is required.")
	}
	if s.verified.Contains(email) {
		// Already verified: succeed without re-checking the code.
		return nil
	}

	v, ok := s.verifications.Get(email)
	if !ok {
		return fmt.Errorf("no pending verification for %s: %w", email, domain.ErrNotFound)
	}
	if s.now().After(v.ExpiresAt) {
		s.verifications.Delete(email)
		return fmt.Errorf("code for %s: %w", email, domain.ErrCodeExpired)
	}
	if v.Code != code {
		return fmt.Errorf("code for %s: %w", email, domain.ErrInvalidCode)
	}

	s.verifications.Delete(email)
	s.verified.Add(email, s.now())
	return nil
}

func (s *service) Status(_ context.Context, email string) (domain.AccountStatus, error) {
	email = normalize.Email(email)
	if !normalize.ValidEmail(email) {
		return domain.AccountStatus{}, domain.Invalid("Valid email is required.")
	}
	rec, ok := s.approvals.Get(email)
	if !ok {
		// No decision yet reads as pending, never as an error.
		return domain.AccountStatus{State: domain.StatusPending}, nil
	}
	if rec.Approved {
		return domain.AccountStatus{State: domain.StatusApproved, ApprovedAt: rec.DecidedAt}, nil
	}
	return domain.AccountStatus{State: domain.StatusRejected}, nil
}

func (s *service) Decide(ctx context.Context, email, approvalToken, action string) (DecisionResult, error) {
	email = normalize.Email(email)
	if email == "" || approvalToken == "" {
		return DecisionResult{}, domain.Invalid("Missing token or email parameter")
	}
	if action == "" {
		action = "approve"
	}
	action = strings.ToLower(action)
	if action != "approve" && action != "reject" {
		return DecisionResult{}, domain.Invalid("Action must be 'approve' or 'reject'")
	}

	now := s.now()
	approved := action == "approve"
	rec := domain.ApprovalRecord{
		Approved:  approved,
		Token:     approvalToken,
		DecidedAt: now,
	}
	if approved {
		rec.ExpiresAt = now.Add(approvalTTL)
	}
	// The token travels with the record for audit; nothing validates it
	// against the registration yet.
	s.approvals.Put(email, rec)

	// The decision is committed; a failed notice is logged, not rolled back.
	if err := s.notifier.DecisionNotice(ctx, email, approved); err != nil {
		slog.Warn("failed to send decision notice", "email", email, "approved", approved, "err", err)
	}

	return DecisionResult{Email: email, Approved: approved}, nil
}

func (s *service) Login(_ context.Context, email, password string) (SessionResult, error) {
	email = normalize.Email(email)
	if !normalize.ValidEmail(email) {
		return SessionResult{}, domain.Invalid("Valid email is required.")
	}

	rec, ok := s.approvals.Get(email)
	isApproved := ok && rec.Approved

	// The portal runs on one shared secret. Until it is set — and at least
	// one account can possibly log in — authentication is simply off.
	configured := s.authPassword != "" && (len(s.allowedUsers) > 0 || isApproved)
	if !configured || s.sessions == nil {
		return SessionResult{}, &domain.RequestError{
			Sentinel: domain.ErrUnavailable,
			Msg:      "Authentication is not configured yet. Please contact us for access.",
		}
	}

	_, allowed := s.allowedUsers[email]
	if (!allowed && !isApproved) || password != s.authPassword {
		return SessionResult{}, &domain.RequestError{
			Sentinel: domain.ErrUnauthorized,
			Msg:      "Invalid credentials.",
		}
	}

	tok, err := s.sessions.Sign(email)
	if err != nil {
		return SessionResult{}, err
	}
	return SessionResult{
		Token:     tok,
		Email:     email,
		ExpiresIn: int(s.sessions.TTL().Seconds()),
	}, nil
}
