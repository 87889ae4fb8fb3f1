package errors

import (
	stderrors "errors"
	"fmt"
	"unicode/utf8"

	goerrors "github.com/go-errors/errors"
)

// MaxExcerptLength bounds how much of a raw service response is kept for diagnosis.
const MaxExcerptLength = 500

// indicates an unrecoverable error
var ErrPermanentFailure = stderrors.New("permanent failure, do not retry")

var (
	ErrCredentialRejected = fmt.Errorf("credential rejected by service: %w", ErrPermanentFailure)
	ErrInvalidRequest     = fmt.Errorf("request rejected by service: %w", ErrPermanentFailure)
)

// Gate failures, raised by callers before an extraction is attempted.
var (
	ErrInvalidCredential = stderrors.New("please enter a valid Gemini API key")
	ErrInvalidContent    = stderrors.New("please enter a job description (minimum 50 characters)")
)

// ErrExtractionInProgress is returned when a session already has an
// extraction outstanding.
var ErrExtractionInProgress = stderrors.New("an extraction is already running for this session")

const userFailureMessage = "Extraction failed. Please check your API key and try again."

type Kind string

const (
	KindValidation Kind = "VALIDATION_FAILURE"
	KindTransport  Kind = "TRANSPORT_FAILURE"
)

// ExtractionError is returned by the extraction pipeline for every failure.
type ExtractionError struct {
	Kind    Kind
	Message string
	// Diagnostic is a response excerpt for validation failures and the
	// underlying error text for transport failures.
	Diagnostic string
	// RootCause is set when the innermost wrapped error says something the
	// surface error does not.
	RootCause string
	Err       error
	Stack     []byte
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.RootCause != "" {
		msg = fmt.Sprintf("%s (underlying error: %s)", msg, e.RootCause)
	}
	if e.Kind == KindValidation && e.Diagnostic != "" {
		msg = fmt.Sprintf("%s; response was: %s", msg, e.Diagnostic)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) StackTrace() []byte {
	return e.Stack
}

// Validation builds a failure for a response that does not match the schema.
// The raw response is cut to MaxExcerptLength characters.
func Validation(message, raw string, err error) *ExtractionError {
	diag := Truncate(raw, MaxExcerptLength)
	if diag == "" && err != nil {
		diag = Truncate(err.Error(), MaxExcerptLength)
	}

	return &ExtractionError{
		Kind:       KindValidation,
		Message:    message,
		Diagnostic: diag,
		Err:        err,
		Stack:      stack(message, err),
	}
}

// Transport builds a failure for a call that never produced a usable response.
func Transport(message string, err error) *ExtractionError {
	e := &ExtractionError{
		Kind:    KindTransport,
		Message: message,
		Err:     err,
		Stack:   stack(message, err),
	}

	if err != nil {
		e.Diagnostic = err.Error()
		if root := rootCause(err); root != nil && root.Error() != err.Error() {
			e.RootCause = root.Error()
		}
	}
	return e
}

func IsValidation(err error) bool {
	var e *ExtractionError
	return stderrors.As(err, &e) && e.Kind == KindValidation
}

func IsTransport(err error) bool {
	var e *ExtractionError
	return stderrors.As(err, &e) && e.Kind == KindTransport
}

// UserMessage maps an error to the text shown to end users. Pipeline
// failures of both kinds share one message; gate errors keep their own.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrInvalidCredential), stderrors.Is(err, ErrInvalidContent),
		stderrors.Is(err, ErrExtractionInProgress):
		return err.Error()
	default:
		return userFailureMessage
	}
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// rootCause follows the wrap chain to its end. For errors wrapping several
// others it follows the last one, which is where the wrapped cause sits in
// "context: %w: %w" errors.
func rootCause(err error) error {
	for {
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			errs := x.Unwrap()
			if len(errs) == 0 {
				return err
			}
			err = errs[len(errs)-1]
		case interface{ Unwrap() error }:
			next := x.Unwrap()
			if next == nil {
				return err
			}
			err = next
		default:
			return err
		}
	}
}

func stack(message string, err error) []byte {
	if err == nil {
		return goerrors.New(message).Stack()
	}
	var stackErr *goerrors.Error
	if stderrors.As(err, &stackErr) {
		return stackErr.Stack()
	}
	return goerrors.Wrap(err, 2).Stack()
}
