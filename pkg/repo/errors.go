// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"errors"
	"fmt"
)

// ErrorCode represents a domain-level error code
type ErrorCode int

const (
	ErrCodeNone ErrorCode = iota
	// ErrCodeMalformedRange - the Range header does not match the accepted
	// grammar or a component failed integer parsing
	ErrCodeMalformedRange
	// ErrCodeInvalidRangeOrder - syntactically valid range whose end
	// precedes its start
	ErrCodeInvalidRangeOrder
	// ErrCodeNotFound - the requested artifact is absent from the store
	ErrCodeNotFound
)

// Error represents a domain-level error. Header carries the offending
// Range header value for diagnostics, when applicable.
type Error struct {
	Code    ErrorCode
	Message string
	Header  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Header != "" {
		msg = fmt.Sprintf("%s (header %q)", msg, e.Header)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the domain error code, or ErrCodeNone for foreign errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeNone
}

func newMalformedRange(message, header string) *Error {
	return &Error{Code: ErrCodeMalformedRange, Message: message, Header: header}
}

func newInvalidRangeOrder(path, header string) *Error {
	return &Error{
		Code:    ErrCodeInvalidRangeOrder,
		Message: fmt.Sprintf("range end is before range start for path [%s]", path),
		Header:  header,
	}
}

func newNotFound(path string, err error) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("artifact not found: %s", path),
		Err:     err,
	}
}
