package domain

// Notification is a single outbound email, consumed exactly once by the
// dispatcher. To is empty for messages addressed to the configured admin
// inbox. Ref is a ULID identifying the message in logs and email footers.
type Notification struct {
	Ref     string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}
