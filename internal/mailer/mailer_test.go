package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestSimulated(t *testing.T) {
	if err := (Simulated{}).Send(context.Background(), Message{}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := (Simulated{Fail: true}).Send(context.Background(), Message{}); !errors.Is(err, ErrSimulatedFailure) {
		t.Fatalf("err = %v, want ErrSimulatedFailure", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (Simulated{Delay: time.Hour}).Send(ctx, Message{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSMTPRequiresCredentials(t *testing.T) {
	s := NewSMTP(SMTPConfig{To: "me@example.com"})
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called without credentials")
		return nil
	}
	if err := s.Send(context.Background(), Message{Name: "a"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSMTPSend(t *testing.T) {
	s := NewSMTP(SMTPConfig{Username: "bot@example.com", Password: "secret", To: "me@example.com"})

	var gotAddr, gotFrom string
	var gotMsg []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotMsg = addr, from, msg
		return nil
	}

	err := s.Send(context.Background(), Message{
		Name:  "Eve\r\nBcc: victim@example.com",
		Email: "eve@example.com",
		Body:  "Hello there",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.gmail.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "bot@example.com" {
		t.Errorf("from = %q", gotFrom)
	}

	msg := string(gotMsg)
	headers, _, ok := strings.Cut(msg, "\r\n\r\n")
	if !ok {
		t.Fatalf("no header/body separator:\n%s", msg)
	}
	if strings.Contains(headers, "\r\nBcc:") {
		t.Errorf("header injection not neutralised:\n%s", headers)
	}
	if !strings.Contains(msg, "Reply-To: eve@example.com\r\n") {
		t.Errorf("missing Reply-To header:\n%s", msg)
	}
	if !strings.Contains(msg, "Hello there") {
		t.Errorf("missing body:\n%s", msg)
	}
}

type recorder struct {
	names []string
	errs  []error
	fail  error
}

func (r *recorder) RecordMessage(_ context.Context, name, _, _ string, sendErr error) error {
	r.names = append(r.names, name)
	r.errs = append(r.errs, sendErr)
	return r.fail
}

func TestArchive(t *testing.T) {
	rec := &recorder{}
	a := &Archive{Next: Simulated{Fail: true}, Recorder: rec}

	err := a.Send(context.Background(), Message{Name: "Ann"})
	if !errors.Is(err, ErrSimulatedFailure) {
		t.Fatalf("err = %v, want the underlying send error", err)
	}
	if len(rec.names) != 1 || rec.names[0] != "Ann" || !errors.Is(rec.errs[0], ErrSimulatedFailure) {
		t.Fatalf("recorded %v %v", rec.names, rec.errs)
	}

	rec.fail = errors.New("disk full")
	a.Next = Simulated{}
	if err := a.Send(context.Background(), Message{Name: "Bob"}); err != nil {
		t.Fatalf("recording failure leaked into send result: %v", err)
	}
}
