package http

import (
	"context"
	"time"

	"github.com/harmonyhub/portal-api/internal/domain"
	jwtinfra "github.com/harmonyhub/portal-api/internal/infrastructure/jwt"
)

// Deps holds the infrastructure dependencies the router wires into services.
type Deps struct {
	Verifications VerificationStore
	Approvals     ApprovalStore
	Verified      VerifiedSet
	Mailer        Mailer
	Sessions      *jwtinfra.Provider // nil when no session secret is configured
}

// Mailer is the minimal interface the router requires from the outbound
// email relay.
type Mailer interface {
	Send(ctx context.Context, n domain.Notification) error
}

// VerificationStore is the minimal interface the router requires from the
// pending-verification store.
type VerificationStore interface {
	Put(email string, v domain.PendingVerification)
	Get(email string) (domain.PendingVerification, bool)
	Delete(email string)
}

// ApprovalStore is the minimal interface the router requires from the
// approval-decision store.
type ApprovalStore interface {
	Put(email string, rec domain.ApprovalRecord)
	Get(email string) (domain.ApprovalRecord, bool)
}

// VerifiedSet is the minimal interface the router requires from the
// verified-email set.
type VerifiedSet interface {
	Add(email string, at time.Time)
	Contains(email string) bool
}
