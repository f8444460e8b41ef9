package handler

import (
	"net/http"

	"github.com/harmonyhub/portal-api/internal/application/account"
	"github.com/harmonyhub/portal-api/internal/domain"
	"github.com/harmonyhub/portal-api/internal/pkg/normalize"
)

// AuthHandler handles registration, verification/status polling, and login.
type AuthHandler struct {
	svc account.Service
}

func NewAuthHandler(svc account.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Register(r.Context(), decodeBody(r)); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK      bool   `json:"ok"`
		Pending bool   `json:"pending"`
		Message string `json:"message"`
	}{
		OK:      true,
		Pending: true,
		Message: "Account request submitted. Check your email for your verification code. We will contact you once approved.",
	})
}

// Verify is overloaded: with a code it confirms the email; with only an
// email it polls the approval track's status.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	email := normalize.First(body, "email")
	code := normalize.Clamp(normalize.First(body, "code"), 12)

	if code != "" {
		if err := h.svc.Verify(r.Context(), email, code); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			OK       bool   `json:"ok"`
			Verified bool   `json:"verified"`
			Message  string `json:"message"`
		}{OK: true, Verified: true, Message: "Email verified."})
		return
	}

	status, err := h.svc.Status(r.Context(), email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeStatus(w, status)
}

func writeStatus(w http.ResponseWriter, status domain.AccountStatus) {
	type resp struct {
		OK         bool   `json:"ok"`
		Approved   bool   `json:"approved"`
		Pending    bool   `json:"pending"`
		Rejected   bool   `json:"rejected,omitempty"`
		Message    string `json:"message"`
		ApprovedAt string `json:"approvedAt,omitempty"`
	}
	switch status.State {
	case domain.StatusApproved:
		writeJSON(w, http.StatusOK, resp{
			OK:         true,
			Approved:   true,
			Message:    "Your account has been approved! Check your email for sign-in instructions.",
			ApprovedAt: status.ApprovedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	case domain.StatusRejected:
		writeJSON(w, http.StatusOK, resp{
			OK:       true,
			Rejected: true,
			Message:  "Your account request was not approved. Please contact us for more information.",
		})
	default:
		writeJSON(w, http.StatusOK, resp{
			OK:      true,
			Pending: true,
			Message: "Your account request is pending review.",
		})
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	email := normalize.First(body, "email")
	password := normalize.First(body, "password")

	result, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK        bool   `json:"ok"`
		Token     string `json:"token"`
		Email     string `json:"email"`
		ExpiresIn int    `json:"expiresIn"`
	}{OK: true, Token: result.Token, Email: result.Email, ExpiresIn: result.ExpiresIn})
}
