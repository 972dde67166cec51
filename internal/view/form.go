package view

import (
	"errors"
	"strings"
)

type ContactFormStatus int

const (
	StatusIdle ContactFormStatus = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s ContactFormStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Contact form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrMissingField = errors.New("required field is empty")
)

type ContactFormState struct {
	Name    string
	Email   string
	Message string
	Status  ContactFormStatus
}

func (f ContactFormState) Pending() bool   { return f.Status == StatusSubmitting }
func (f ContactFormState) Succeeded() bool { return f.Status == StatusSuccess }
func (f ContactFormState) Failed() bool    { return f.Status == StatusError }

func (f *ContactFormState) set(name, value string) error {
	switch name {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return ErrUnknownField
	}
	return nil
}

// missing returns the first required field that is blank.
func (f *ContactFormState) missing() (string, bool) {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return FieldName, true
	case strings.TrimSpace(f.Email) == "":
		return FieldEmail, true
	case strings.TrimSpace(f.Message) == "":
		return FieldMessage, true
	}
	return "", false
}

func (f *ContactFormState) clear() {
	f.Name, f.Email, f.Message = "", "", ""
}
