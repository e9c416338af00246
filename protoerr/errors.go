// Package protoerr defines the error taxonomy shared by every layer of the
// connection engine: framing, cipher/compression, the packet catalog, the
// connection itself, and the handshake driver.
//
// All of them are fatal to the Connection they occurred on except where
// noted; none of them are retried internally.
package protoerr

import "fmt"

// Kind classifies an Error. Callers compare against these with errors.Is.
type Kind int

const (
	// KindIO wraps an underlying stream failure.
	KindIO Kind = iota
	// KindTimeout signals the 30-second idle-read budget was exceeded.
	KindTimeout
	// KindMalformed signals a wire decode failure: invalid bool, oversized
	// varint/varlong, bad UTF-8, truncated frame, out-of-range position,
	// invalid discriminant in a conditional-shape packet.
	KindMalformed
	// KindUnknownPacket signals no decoder is registered for
	// (direction, state, id).
	KindUnknownPacket
	// KindProtocolViolation signals the peer did something the handshake
	// or state machine forbids (e.g. LoginDisconnect mid-handshake,
	// LoginSuccess during the authenticated encryption phase).
	KindProtocolViolation
	// KindCrypto wraps an RSA/AES setup or operation failure.
	KindCrypto
	// KindInvalidOutbound signals a variant failed its internal
	// consistency check before any bytes were written — a programmer
	// error, not a protocol error.
	KindInvalidOutbound
	// KindClosed signals an operation on an already-closed connection.
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed"
	case KindUnknownPacket:
		return "unknown_packet"
	case KindProtocolViolation:
		return "protocol_violation"
	case KindCrypto:
		return "crypto"
	case KindInvalidOutbound:
		return "invalid_outbound"
	case KindClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Wrap with fmt.Errorf("...: %w", err) same as any stdlib error;
// errors.Is(err, protoerr.KindTimeout) does not work directly since Kind is
// not an error — use Is(err, KindX) instead.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no underlying cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given kind, looking through any
// wrapping via errors.As semantics (a plain equality walk is sufficient
// here since Error.Unwrap already exposes the chain to errors.Is/As).
func Is(err error, kind Kind) bool {
	var pe *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			pe = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return pe != nil && pe.Kind == kind
}
