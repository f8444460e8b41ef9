package domain

// AppointmentRequest is the canonical appointment form submission after alias
// coercion and clamping. Field caps mirror what the normalizer enforces.
type AppointmentRequest struct {
	FullName          string `json:"fullName" validate:"required,max=120"`
	Email             string `json:"email" validate:"required,max=254"`
	Phone             string `json:"phone" validate:"max=40"`
	Service           string `json:"service" validate:"required,max=190"`
	AppointmentType   string `json:"appointmentType" validate:"required,max=80"`
	PreferredDateTime string `json:"preferredDateTime" validate:"max=80"`
	Message           string `json:"message" validate:"max=4000"`
}

// ContactRequest is the canonical contact form submission.
type ContactRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,max=254"`
	Phone    string `json:"phone" validate:"max=40"`
	Topic    string `json:"topic" validate:"max=120"`
	Message  string `json:"message" validate:"required,max=4000"`
}
