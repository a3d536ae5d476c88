package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a stable, client-facing error identifier.
type Code string

const (
	RequestDoesNotExist       Code = "REQUEST_DOES_NOT_EXIST"
	AccessDenied              Code = "ACCESS_DENIED"
	RequestFileDoesNotExist   Code = "REQUEST_FILE_DOES_NOT_EXIST"
	TooManyFilesInRequest     Code = "TOO_MANY_FILES_IN_REQUEST"
	RequestSizeExceeded       Code = "REQUEST_SIZE_EXCEEDED"
	RequestFileSizeExceeded   Code = "REQUEST_FILE_SIZE_EXCEEDED"
	RequestFileAlreadyClosed  Code = "REQUEST_FILE_ALREADY_CLOSED"
	RequestFileDesynchronized Code = "REQUEST_FILE_DESYNCHRONIZED"
	RequestNotReadyYet        Code = "REQUEST_NOT_READY_YET"
	RequestChunkTooSmall      Code = "REQUEST_CHUNK_TOO_SMALL"
	RequestNotProcessing      Code = "REQUEST_NOT_PROCESSING"
	InvalidParams             Code = "INVALID_PARAMS"
)

// Error is a typed failure carrying a Code and optional structured context.
type Error struct {
	Code    Code
	Context map[string]any
	Err     error
}

func New(code Code) *Error {
	return &Error{Code: code}
}

// WithContext returns a copy of e with the key/value pairs added to its context.
func (e *Error) WithContext(kv ...any) *Error {
	ctx := make(map[string]any, len(e.Context)+len(kv)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		ctx[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return &Error{Code: e.Code, Context: ctx, Err: e.Err}
}

// Wrap attaches an underlying cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Context: e.Context, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %v", k, e.Context[k])
		}
		b.WriteString("}")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

var (
	ErrRequestDoesNotExist       = New(RequestDoesNotExist)
	ErrAccessDenied              = New(AccessDenied)
	ErrRequestFileDoesNotExist   = New(RequestFileDoesNotExist)
	ErrTooManyFilesInRequest     = New(TooManyFilesInRequest)
	ErrRequestSizeExceeded       = New(RequestSizeExceeded)
	ErrRequestFileSizeExceeded   = New(RequestFileSizeExceeded)
	ErrRequestFileAlreadyClosed  = New(RequestFileAlreadyClosed)
	ErrRequestFileDesynchronized = New(RequestFileDesynchronized)
	ErrRequestNotReadyYet        = New(RequestNotReadyYet)
	ErrRequestNotProcessing      = New(RequestNotProcessing)
	ErrInvalidParams             = New(InvalidParams)
)
