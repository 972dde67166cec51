// Package mailer delivers contact-form messages.
package mailer

import (
	"context"
	"errors"
	"time"
)

// Message is one contact-form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Sender delivers a message. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, m Message) error

func (f SenderFunc) Send(ctx context.Context, m Message) error {
	return f(ctx, m)
}

var ErrSimulatedFailure = errors.New("simulated send failure")

// Simulated pretends to deliver after Delay. It fails only when Fail is set.
type Simulated struct {
	Delay time.Duration
	Fail  bool
}

func (s Simulated) Send(ctx context.Context, _ Message) error {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.Fail {
		return ErrSimulatedFailure
	}
	return nil
}
