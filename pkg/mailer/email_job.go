package mailer

import "errors"

var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrNoContent   = errors.New("email job has neither a template nor a body")
)

// EmailJob is the JSON payload put on the notification queue.
// A job names a template and its data, or carries a literal subject and body.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "swap_request_received", "request_message"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate reports whether the job can be delivered at all.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return ErrNoRecipient
	}
	if j.Template == "" && j.Text == "" && j.HTML == "" {
		return ErrNoContent
	}
	return nil
}
