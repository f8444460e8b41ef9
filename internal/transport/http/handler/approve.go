package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/harmonyhub/portal-api/internal/application/account"
	"github.com/harmonyhub/portal-api/internal/pkg/normalize"
)

// ApproveHandler handles the administrative approve/reject action. Admins
// usually click the link from their inbox, so GET renders a small HTML
// confirmation page; POST answers JSON for scripted use.
type ApproveHandler struct {
	svc account.Service
}

func NewApproveHandler(svc account.Service) *ApproveHandler {
	return &ApproveHandler{svc: svc}
}

func (h *ApproveHandler) Action(w http.ResponseWriter, r *http.Request) {
	var email, token, action string
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		email, token, action = q.Get("email"), q.Get("token"), q.Get("action")
	} else {
		body := decodeBody(r)
		email = normalize.First(body, "email")
		token = normalize.First(body, "token")
		action = normalize.First(body, "action")
	}

	result, err := h.svc.Decide(r.Context(), email, token, action)
	if err != nil {
		if r.Method == http.MethodGet {
			writeHTMLPage(w, http.StatusBadRequest, "Something went wrong", err.Error())
			return
		}
		httpError(w, err)
		return
	}

	verb := "approved"
	if !result.Approved {
		verb = "rejected"
	}
	msg := fmt.Sprintf("Account %s has been %s. User notified via email.", result.Email, verb)

	if r.Method == http.MethodGet {
		writeHTMLPage(w, http.StatusOK, "Decision recorded", msg)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK       bool   `json:"ok"`
		Message  string `json:"message"`
		Approved bool   `json:"approved"`
	}{OK: true, Message: msg, Approved: result.Approved})
}

func writeHTMLPage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!doctype html>
<html><head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;max-width:560px;margin:60px auto;padding:0 20px;line-height:1.5">
<h1 style="color:#1f2937;font-size:22px">%s</h1>
<p style="color:#374151">%s</p>
</body></html>`, html.EscapeString(title), html.EscapeString(title), html.EscapeString(body))
}
