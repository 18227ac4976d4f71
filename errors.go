// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import "errors"

var (
	// ErrSessionClosed indicates an operation was attempted on a closed
	// session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrExcessiveMid indicates a remote description carried a mid longer
	// than the configured maximum.
	ErrExcessiveMid = errors.New("mid exceeds the maximum length")

	// ErrBundleExtensionIDCollision indicates one extension id was bound to
	// two different uris within a single bundle group.
	ErrBundleExtensionIDCollision = errors.New("header extension id bound to multiple uris within a bundle group")

	// ErrSSRCGroupIncomplete indicates an ssrc-group referenced an ssrc that
	// has no stream (cname) binding in the same media section.
	ErrSSRCGroupIncomplete = errors.New("ssrc-group references an ssrc without a stream binding")

	// ErrSimulcastMissingExtensions indicates a simulcast answer arrived
	// without the sdes:mid and sdes:rtp-stream-id header extensions needed
	// to demultiplex the incoming streams.
	ErrSimulcastMissingExtensions = errors.New("simulcast requires the mid and rtp-stream-id header extensions")

	// ErrDuplicateSSRC indicates one ssrc value appeared in two different
	// streams of a candidate local description.
	ErrDuplicateSSRC = errors.New("duplicate ssrc across media streams")

	// ErrDuplicateActiveMid indicates two simultaneously active transceivers
	// claim the same mid.
	ErrDuplicateActiveMid = errors.New("mid reused by two active transceivers")

	// ErrMidInMultipleBundleGroups indicates one mid was listed by more than
	// one bundle group of a single description.
	ErrMidInMultipleBundleGroups = errors.New("mid listed in multiple bundle groups")

	// ErrNoPendingDescription indicates an answer-producing operation ran
	// without a pending remote offer.
	ErrNoPendingDescription = errors.New("no pending remote description")

	errRollbackFromStable     = errors.New("rollback is not allowed from stable")
	errApplicationTransceiver = errors.New("transceivers cannot be of kind application")
	errNilDescription         = errors.New("description must not be nil")
	errMalformedRtpmap        = errors.New("malformed rtpmap attribute")
	errMalformedExtmap        = errors.New("malformed extmap attribute")
	errMalformedSSRC          = errors.New("malformed ssrc attribute")
	errMalformedSSRCGroup     = errors.New("malformed ssrc-group attribute")
	errDetachedDataChannel    = errors.New("data channel is not attached to a session")
	errDetachedTransceiver    = errors.New("transceiver is not attached to a session")
	errStoppedTransceiver     = errors.New("transceiver is stopped")
	errPranswerWithoutPending = errors.New("pranswer requires a pending offer")
)
