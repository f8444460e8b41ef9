// Package spam implements the form-abuse heuristics shared by the public
// intake endpoints: honeypot fields, a time-to-submit window, and link and
// keyword scoring on free-text content.
package spam

import (
	"regexp"
	"strings"
	"time"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// Policy tunes the heuristics per endpoint. Booking forms never contain
// legitimate links, so they reject on any hit instead of scoring.
type Policy struct {
	MinElapsed    time.Duration
	RejectAnyLink bool
}

// Fields carries the payload values the heuristics inspect. StartedAt is the
// form-render timestamp in Unix milliseconds; zero means the form did not
// report one and the timing check is skipped.
type Fields struct {
	Honeypot  string
	StartedAt int64
	Message   string
}

const scoreThreshold = 5

var linkPattern = regexp.MustCompile(`https?://|www\.`)

// Keywords that near-exclusively appear in automated submissions. Each hit
// adds 3 to the score.
var keywords = []string{
	"viagra", "casino", "porn", "escort", "forex", "crypto investment",
	"telegram me", "whatsapp me", "guaranteed profit", "loan offer", "click here",
}

// Evaluate returns nil for an acceptable submission or a spam rejection
// whose message is safe to show the caller.
func Evaluate(f Fields, p Policy, now time.Time) error {
	if strings.TrimSpace(f.Honeypot) != "" {
		return domain.Spam("Spam detected.")
	}

	if f.StartedAt > 0 {
		elapsed := now.Sub(time.UnixMilli(f.StartedAt))
		if elapsed < p.MinElapsed {
			return domain.Spam("Submission too fast.")
		}
		if elapsed > 24*time.Hour {
			return domain.Spam("Stale form.")
		}
	}

	lower := strings.ToLower(f.Message)
	linkHits := len(linkPattern.FindAllString(lower, -1))

	if p.RejectAnyLink {
		if linkHits >= 1 {
			return domain.Spam("Links are not allowed in this form.")
		}
		return nil
	}

	score := 0
	switch {
	case linkHits >= 2:
		score += 4
	case linkHits == 1:
		score++
	}
	for _, w := range keywords {
		if strings.Contains(lower, w) {
			score += 3
		}
	}
	if t := strings.TrimSpace(f.Message); t != "" && len(t) < 8 {
		score++
	}
	if score >= scoreThreshold {
		return domain.Spam("Message blocked as spam.")
	}
	return nil
}
