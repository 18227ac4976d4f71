// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package rtcerr implements the typed error kinds surfaced by the
// negotiation engine.
package rtcerr

import (
	"fmt"
)

// MalformedDescriptionError indicates a description violated a structural
// invariant, e.g. an ssrc-group referencing an unlisted ssrc.
type MalformedDescriptionError struct {
	Err error
}

func (e *MalformedDescriptionError) Error() string {
	return fmt.Sprintf("MalformedDescriptionError: %v", e.Err)
}

func (e *MalformedDescriptionError) Unwrap() error {
	return e.Err
}

// InvalidParameterError indicates a description violated a semantic
// negotiation rule, e.g. a header-extension id bound to two uris within
// one bundle group.
type InvalidParameterError struct {
	Err error
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("InvalidParameterError: %v", e.Err)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// IllegalStateError indicates an operation was invoked in a signaling
// state that forbids it, e.g. a rollback from stable.
type IllegalStateError struct {
	Err error
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("IllegalStateError: %v", e.Err)
}

func (e *IllegalStateError) Unwrap() error {
	return e.Err
}

// UnknownError indicates the operation failed for an unknown transient
// reason.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("UnknownError: %v", e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}
