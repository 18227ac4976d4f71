// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import "github.com/pion/logging"

// Configuration customizes a Session. The zero value is ready to use.
type Configuration struct {
	// LoggerFactory creates the session's logger. Defaults to the pion
	// default factory, which honors the PION_LOG_* environment
	// variables.
	LoggerFactory logging.LoggerFactory

	// EventRecorder receives validation telemetry. Defaults to a
	// recorder that discards every event.
	EventRecorder EventRecorder

	// MaxMidLength caps accepted media section identifiers. Zero means
	// the default of 16 bytes.
	MaxMidLength int
}
