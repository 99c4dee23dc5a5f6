package wzerrors

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by the
// configuration subsystem.
type Kind string

const (
	// KindMalformedInput indicates a source document that cannot be
	// interpreted (broken markup, missing expected structure).
	KindMalformedInput Kind = "malformed-input"
	// KindUnknownSection indicates a request for a section that is not
	// part of the configuration vocabulary.
	KindUnknownSection Kind = "unknown-section"
	// KindUnknownField indicates a request for a field absent from the
	// converted section.
	KindUnknownField Kind = "unknown-field"
	// KindResourceUnavailable indicates a referenced group or file that
	// does not exist.
	KindResourceUnavailable Kind = "resource-unavailable"
	// KindTransport indicates the socket could not be opened or the
	// reply framing was invalid.
	KindTransport Kind = "transport"
	// KindRemoteUnavailable indicates the remote side reported a missing
	// socket path or an unreachable component.
	KindRemoteUnavailable Kind = "remote-unavailable"
	// KindRemoteError indicates any other error reported by the remote
	// component.
	KindRemoteError Kind = "remote-error"
	// KindValidation indicates an uploaded configuration rejected by the
	// escape encoding or the external syntax validator.
	KindValidation Kind = "validation"
	// KindRange indicates a parsed numeric option outside its declared
	// bounds.
	KindRange Kind = "range"
)

// Error wraps an underlying cause with a Kind so callers can branch on
// the failure class without string matching.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New wraps err with the given kind.
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// Newf wraps a formatted message with the given kind.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the Kind carried by err, or "" when err was not
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
