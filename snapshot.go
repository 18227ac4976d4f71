// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// transceiverState is a by-value copy of the mutable parts of one
// transceiver.
type transceiverState struct {
	transceiver *Transceiver
	mid         string
	direction   Direction
	stopped     bool
}

// pendingSnapshot preserves the negotiated state at the moment an offer
// is applied, captured by copy so later mutation of the live
// transceiver set cannot corrupt a rollback. It is discarded when the
// round completes on an answer, or consumed by a rollback.
type pendingSnapshot struct {
	transceivers []transceiverState
	slots        []sectionSlot
	greaterMid   int
}

func (s *Session) takeSnapshot() *pendingSnapshot {
	snap := &pendingSnapshot{greaterMid: s.mids.greater}

	snap.transceivers = make([]transceiverState, 0, len(s.transceivers))
	for _, t := range s.transceivers {
		snap.transceivers = append(snap.transceivers, transceiverState{
			transceiver: t,
			mid:         t.mid,
			direction:   t.direction,
			stopped:     t.stopped,
		})
	}

	snap.slots = append([]sectionSlot(nil), s.slots...)

	return snap
}

// restoreSnapshot reverts mids, directions and the section-to-
// transceiver mapping. Transceivers created after the snapshot was
// taken (by the rolled-back remote offer) are detached and stopped.
func (s *Session) restoreSnapshot(snap *pendingSnapshot) {
	kept := map[*Transceiver]bool{}
	for _, state := range snap.transceivers {
		kept[state.transceiver] = true
	}
	for _, t := range s.transceivers {
		if !kept[t] {
			t.mid = ""
			t.stopped = true
		}
	}

	s.transceivers = s.transceivers[:0]
	for _, state := range snap.transceivers {
		t := state.transceiver
		t.mid = state.mid
		t.direction = state.direction
		t.stopped = state.stopped
		s.transceivers = append(s.transceivers, t)
	}

	// findSlot below must not observe stale entries.
	s.slots = append(s.slots[:0:0], snap.slots...)

	for i := range s.slots {
		if t := s.slots[i].transceiver; t != nil && !kept[t] {
			s.slots[i].transceiver = nil
		}
	}

	s.mids.greater = snap.greaterMid
}
