// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultUnimplementedCode is the gRPC "unimplemented" code the daemon
// returns while a service is not registered.
const DefaultUnimplementedCode = int(codes.Unimplemented)

// DefaultWalletExistsMessage is the only signal the daemon gives that a
// wallet was already created. It arrives under the generic code 2.
const DefaultWalletExistsMessage = "wallet already exists"

// ErrMalformedInfo is returned when an info probe reports success without a payload.
var ErrMalformedInfo = errors.New("engine: info probe returned no result")

// ProbeError is a failed probe as reported by the node.
type ProbeError struct {
	Code    int
	Message string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed: code=%d message=%q", e.Code, e.Message)
}

// ErrorKind is the classified shape of a probe failure.
type ErrorKind uint8

const (
	KindOther ErrorKind = iota
	KindNotImplemented
	KindWalletExists
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotImplemented:
		return "not_implemented"
	case KindWalletExists:
		return "wallet_exists"
	default:
		return "other"
	}
}

// ErrorClassifier maps probe failures onto ErrorKind.
// Both signals are configuration so fakes can drive every branch.
type ErrorClassifier struct {
	UnimplementedCode   int
	WalletExistsMessage string
}

// DefaultErrorClassifier matches the daemon's gRPC behaviour.
func DefaultErrorClassifier() ErrorClassifier {
	return ErrorClassifier{
		UnimplementedCode:   DefaultUnimplementedCode,
		WalletExistsMessage: DefaultWalletExistsMessage,
	}
}

// Classify is pure. The code check wins over the message check.
func (c ErrorClassifier) Classify(pe ProbeError) ErrorKind {
	if pe.Code == c.UnimplementedCode {
		return KindNotImplemented
	}
	// Substring match on free text: the daemon exposes nothing structured.
	if c.WalletExistsMessage != "" && strings.Contains(pe.Message, c.WalletExistsMessage) {
		return KindWalletExists
	}
	return KindOther
}

// Match classifies err if it carries a (code, message) shape.
// ok is false for errors the node did not produce; callers must propagate those.
func (c ErrorClassifier) Match(err error) (kind ErrorKind, ok bool) {
	pe, ok := probeErrorOf(err)
	if !ok {
		return KindOther, false
	}
	return c.Classify(pe), true
}

// codedError is any client error exposing the node's code and message.
type codedError interface {
	error
	Code() int
	Message() string
}

// probeErrorOf extracts a ProbeError without assuming the transport.
// Accepted: *ProbeError anywhere in the chain, a codedError, or a gRPC status error.
func probeErrorOf(err error) (ProbeError, bool) {
	if err == nil {
		return ProbeError{}, false
	}

	var pe *ProbeError
	if errors.As(err, &pe) && pe != nil {
		return *pe, true
	}

	var ce codedError
	if errors.As(err, &ce) {
		return ProbeError{Code: ce.Code(), Message: ce.Message()}, true
	}

	if s, ok := status.FromError(err); ok {
		return ProbeError{Code: int(s.Code()), Message: s.Message()}, true
	}

	return ProbeError{}, false
}
