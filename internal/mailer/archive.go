package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Recorder stores a delivery attempt and its outcome.
type Recorder interface {
	RecordMessage(ctx context.Context, name, email, body string, sendErr error) error
}

// Archive records every attempt made through Next. A failure to record is
// logged and never changes the send outcome.
type Archive struct {
	Next     Sender
	Recorder Recorder
	Log      logrus.FieldLogger
}

func (a *Archive) Send(ctx context.Context, m Message) error {
	err := a.Next.Send(ctx, m)
	if rerr := a.Recorder.RecordMessage(context.WithoutCancel(ctx), m.Name, m.Email, m.Body, err); rerr != nil && a.Log != nil {
		a.Log.WithError(rerr).Warn("archiving contact message")
	}
	return err
}
