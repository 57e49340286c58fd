package task

import (
	"context"
	"encoding/json"
	"time"

	mailport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/mail/port"
	qport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/port"
)

// SendMailTaskType is the queue task name for outbound mail delivery.
const SendMailTaskType = "mail:send"

// SendMailTaskPayload is the JSON payload transported via the queue.
type SendMailTaskPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RegisterSendMailTask binds the mail delivery handler to the worker server.
func RegisterSendMailTask(srv qport.Server, mailer mailport.Mailer) {
	srv.Register(SendMailTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMailTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying will never help
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return mailer.Send(ctx, mailport.Mail{To: p.To, Subject: p.Subject, Body: p.Body})
	})
}

// Enqueue queues one mail for background delivery on the "mail" queue.
func Enqueue(ctx context.Context, client qport.Client, p SendMailTaskPayload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = client.Enqueue(ctx, qport.Task{Type: SendMailTaskType, Payload: b},
		qport.EnqueueOption{Queue: "mail", MaxRetry: 10})
	return err
}
