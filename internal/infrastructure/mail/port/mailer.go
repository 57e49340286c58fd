package port

import "context"

// Mail is one outbound plain-text email.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers mail. Implementations must be safe for concurrent use;
// delivery is attempted once per call, retries are the caller's concern
// (in practice the queue worker's).
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}
