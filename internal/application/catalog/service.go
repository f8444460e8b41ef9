package catalog

import (
	"time"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// Service serves the static service catalog. Keeping it behind the API lets
// the offerings change without redeploying the front-end.
type Service interface {
	Catalog(category string) domain.Catalog
}

type service struct{}

func NewService() Service { return &service{} }

var featured = []domain.ServiceOffering{
	{ID: "assessment", Name: "Assessment", Price: "$30 per 30 min (min)", Description: "Clarify what you need, what documents apply, and next steps.", Category: "consultation"},
	{ID: "ei-application", Name: "EI Application", Price: "$50", Description: "Help organizing information and completing required steps.", Category: "benefits"},
	{ID: "resume-development", Name: "Resume Development", Price: "$20–$65", Description: "Professional resume tailored to your experience and goals.", Category: "employment"},
	{ID: "passport-renewal", Name: "Passport Renewal Support", Price: "$40+", Description: "Document checklist and form completion assistance.", Category: "travel"},
}

var categories = []domain.ServiceCategory{
	{ID: "employment", Name: "Employment & Work", Description: "Resumes, cover letters, job search support, orientation support.", Icon: "briefcase"},
	{ID: "benefits", Name: "Supports & Benefits", Description: "EI, income support, disability benefits, pension navigation.", Icon: "document"},
	{ID: "immigration", Name: "Immigration & Travel (Non-rep)", Description: "Document/form support within scope. No representation.", Icon: "globe"},
	{ID: "housing", Name: "Housing & Tenancy", Description: "Lease reviews, rental applications, dispute support (non-legal).", Icon: "home"},
	{ID: "commissioning", Name: "Commissioning Services", Description: "Oath administration and document commissioning (where permitted).", Icon: "stamp"},
	{ID: "advocacy", Name: "System Navigation & Advocacy", Description: "Complaint letters, appeal support, and system navigation.", Icon: "compass"},
}

func (s *service) Catalog(category string) domain.Catalog {
	out := domain.Catalog{
		Featured:    featured,
		Categories:  categories,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if category != "" {
		var filtered []domain.ServiceOffering
		for _, f := range featured {
			if f.Category == category {
				filtered = append(filtered, f)
			}
		}
		out.Featured = filtered
	}
	return out
}
