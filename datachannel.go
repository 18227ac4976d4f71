// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// DataChannel is the negotiation-side handle for one data channel. An
// open channel keeps the session's application section alive; closing
// the last one causes the section to be rejected in the next offer.
type DataChannel struct {
	session *Session

	id     string
	label  string
	closed bool
}

// ID returns the channel's unique identifier.
func (d *DataChannel) ID() string {
	var id string
	d.session.ops.Invoke(func() { id = d.id })

	return id
}

// Label returns the label the channel was created with.
func (d *DataChannel) Label() string {
	var label string
	d.session.ops.Invoke(func() { label = d.label })

	return label
}

// Closed reports whether the channel was closed, either locally or by a
// negotiated rejection of the application section.
func (d *DataChannel) Closed() bool {
	var closed bool
	d.session.ops.Invoke(func() { closed = d.closed })

	return closed
}

// Close closes the channel. If it was the last open channel the
// application section is rejected at the next negotiation.
func (d *DataChannel) Close() error {
	if d.session == nil {
		return errDetachedDataChannel
	}

	d.session.ops.Invoke(func() {
		if d.closed {
			return
		}
		d.closed = true
		d.session.negotiationNeeded.Store(true)
	})

	return nil
}
