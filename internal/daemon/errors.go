package daemon

import (
	"errors"
	"fmt"

	"github.com/desertthunder/tdx/internal/models"
)

// ExceptionType classifies why a task failed.
type ExceptionType int

const (
	MethodInitFailed ExceptionType = iota
	ConnectionError
	UnexpectedResponse
	ParsingFailed
	NotConnected
	AuthenticationFailure
	FileAccessError
	MethodUnsupported
)

func (t ExceptionType) String() string {
	switch t {
	case MethodInitFailed:
		return "MethodInitFailed"
	case ConnectionError:
		return "ConnectionError"
	case UnexpectedResponse:
		return "UnexpectedResponse"
	case ParsingFailed:
		return "ParsingFailed"
	case NotConnected:
		return "NotConnected"
	case AuthenticationFailure:
		return "AuthenticationFailure"
	case FileAccessError:
		return "FileAccessError"
	case MethodUnsupported:
		return "MethodUnsupported"
	default:
		return "Unknown"
	}
}

// DaemonError is the error carried by a [FailureResult].
type DaemonError struct {
	Type    ExceptionType
	Message string
}

// Sentinels for use with [errors.Is]. Matching compares the [ExceptionType] only.
var (
	ErrMethodInitFailed      = &DaemonError{Type: MethodInitFailed}
	ErrConnectionError       = &DaemonError{Type: ConnectionError}
	ErrUnexpectedResponse    = &DaemonError{Type: UnexpectedResponse}
	ErrParsingFailed         = &DaemonError{Type: ParsingFailed}
	ErrNotConnected          = &DaemonError{Type: NotConnected}
	ErrAuthenticationFailure = &DaemonError{Type: AuthenticationFailure}
	ErrFileAccessError       = &DaemonError{Type: FileAccessError}
	ErrMethodUnsupported     = &DaemonError{Type: MethodUnsupported}
)

// NewError creates a [DaemonError] with a formatted message.
func NewError(t ExceptionType, format string, args ...any) *DaemonError {
	return &DaemonError{Type: t, Message: fmt.Sprintf(format, args...)}
}

// NotSupported is the error for a method the given backend kind does not implement.
func NotSupported(m Method, kind models.Daemon) *DaemonError {
	return NewError(MethodUnsupported, "%s is not supported by %s", m, kind)
}

func (e *DaemonError) Error() string {
	if e.Message == "" {
		return e.Type.String()
	}
	return e.Type.String() + ": " + e.Message
}

func (e *DaemonError) Is(target error) bool {
	t, ok := target.(*DaemonError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// AsDaemonError returns err as a [DaemonError], classifying foreign errors as [UnexpectedResponse].
func AsDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}
	var de *DaemonError
	if errors.As(err, &de) {
		return de
	}
	return &DaemonError{Type: UnexpectedResponse, Message: err.Error()}
}
