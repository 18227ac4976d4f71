// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// Transceiver represents a sender/receiver pairing bound to one media
// section. The struct's fields belong to the signaling goroutine; the
// exported accessors are synchronizing proxies that forward to it, so a
// handle delivered via OnTrack stays safe to use from any goroutine.
type Transceiver struct {
	session *Session

	kind      MediaKind
	mid       string
	direction Direction
	stopped   bool

	// sender side proposal for locally generated descriptions
	ssrc SSRC
	rids []string
}

// TransceiverInit configures a transceiver added with AddTransceiver.
type TransceiverInit struct {
	Direction Direction

	// SendEncodings lists the rids of the simulcast layers this
	// transceiver will offer. Empty means a single unrestricted stream.
	SendEncodings []string
}

// Mid returns the media section identifier, or "" before one was
// negotiated. Once assigned the value never changes for the lifetime of
// the transceiver, rollback included.
func (t *Transceiver) Mid() string {
	var mid string
	t.session.ops.Invoke(func() { mid = t.mid })

	return mid
}

// Kind returns the transceiver's media kind.
func (t *Transceiver) Kind() MediaKind {
	var kind MediaKind
	t.session.ops.Invoke(func() { kind = t.kind })

	return kind
}

// Direction returns the currently requested direction.
func (t *Transceiver) Direction() Direction {
	var direction Direction
	t.session.ops.Invoke(func() { direction = t.direction })

	return direction
}

// Stopped reports whether the transceiver was irreversibly stopped.
func (t *Transceiver) Stopped() bool {
	var stopped bool
	t.session.ops.Invoke(func() { stopped = t.stopped })

	return stopped
}

// SetDirection changes the requested direction. The change takes
// effect at the next negotiation round.
func (t *Transceiver) SetDirection(direction Direction) error {
	if t.session == nil {
		return errDetachedTransceiver
	}

	var err error
	t.session.ops.Invoke(func() {
		if t.stopped {
			err = errStoppedTransceiver

			return
		}
		if t.direction == direction {
			return
		}
		t.direction = direction
		t.session.negotiationNeeded.Store(true)
	})

	return err
}

// Stop irreversibly stops the transceiver. Its section is reported
// rejected in the next offer, keeping the mid, until the slot is
// recycled for a new transceiver.
func (t *Transceiver) Stop() error {
	if t.session == nil {
		return errDetachedTransceiver
	}

	t.session.ops.Invoke(func() {
		if t.stopped {
			return
		}
		t.stopped = true
		t.direction = DirectionInactive
		t.session.negotiationNeeded.Store(true)
	})

	return nil
}

// sending reports whether the transceiver contributes outgoing media.
func (t *Transceiver) sending() bool {
	return !t.stopped && (t.direction == DirectionSendrecv || t.direction == DirectionSendonly)
}
