package domain

import "time"

// Account lifecycle states reported by the status query. A missing approval
// record reads as pending, never as an error.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// RegisterRequest is the canonical account request after alias coercion.
// The plaintext password never leaves the account service; only its bcrypt
// digest is stored on the pending entry.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,max=254"`
	Phone    string `json:"phone" validate:"max=40"`
	Password string `json:"password" validate:"required,min=8,max=120"`
}

// Profile is the caller-supplied data held while a verification is pending.
type Profile struct {
	FullName     string
	Phone        string
	PasswordHash string
}

// PendingVerification holds the one-time code for the email-confirmation
// track. At most one active entry exists per email; re-registering replaces
// it. Entries past ExpiresAt must be treated as absent even when not yet
// deleted.
type PendingVerification struct {
	Code      string
	ExpiresAt time.Time
	Profile   Profile
}

// ApprovalRecord is the admin-review track's decision for an email. A later
// decision overwrites an earlier one; no history is kept. Approvals carry a
// 24-hour token validity window; rejections leave ExpiresAt zero.
type ApprovalRecord struct {
	Approved  bool
	Token     string
	DecidedAt time.Time
	ExpiresAt time.Time
}

// AccountStatus is the polling view of both lifecycle tracks.
type AccountStatus struct {
	State      string
	ApprovedAt time.Time
}
