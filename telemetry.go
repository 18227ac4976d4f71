// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// Event names a boolean-valued validity counter. Each applicable
// validation pass records exactly one value per event, regardless of
// how many findings the pass produced.
type Event string

const (
	// EventBundlePayloadTypeValidity records whether the payload types of
	// a remote description were consistent across each bundle group.
	EventBundlePayloadTypeValidity Event = "BundlePayloadTypeValidity"

	// EventBundleExtensionIDValidity records whether the header-extension
	// ids of a remote description were consistent across each bundle
	// group.
	EventBundleExtensionIDValidity Event = "BundleExtensionIdValidity"
)

// EventRecorder consumes validity events. The engine does not own a
// metrics subsystem; implementations live with the application, see
// pkg/telemetry for a Prometheus-backed one.
type EventRecorder interface {
	RecordValidity(event Event, valid bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordValidity(Event, bool) {}
