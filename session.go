// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package negotiation implements an offer/answer negotiation and
// validation engine for multiplexed real-time media sessions. It
// consumes structured session descriptions, tracks the signaling state
// machine, allocates and recycles media section identifiers, and
// validates bundle-group consistency before a description is applied.
package negotiation

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"github.com/pion/negotiation/internal/util"
	"github.com/pion/negotiation/pkg/rtcerr"
	"github.com/pion/sdp/v3"
)

// sectionSlot is one position in the negotiated section order. Section
// order is append-only across renegotiation rounds; a slot whose
// transceiver stopped stays in place, rejected, until it is recycled
// for a new transceiver of the same kind.
type sectionSlot struct {
	mid         string
	kind        MediaKind
	rejected    bool
	transceiver *Transceiver
}

// Session drives the offer/answer dialogue for one media session. All
// mutation runs serialized on a signaling goroutine; the public methods
// and the Transceiver/DataChannel accessors are synchronizing proxies
// onto it, so handles may be used from any goroutine, handlers
// included.
type Session struct {
	ops *operations
	log logging.LeveledLogger

	recorder     EventRecorder
	maxMidLength int
	cname        string

	isClosed          atomic.Bool
	negotiationNeeded *atomic.Bool

	// Everything below is owned by the signaling goroutine.
	signalingState SignalingState

	currentLocalDescription  *SessionDescription
	pendingLocalDescription  *SessionDescription
	currentRemoteDescription *SessionDescription
	pendingRemoteDescription *SessionDescription

	transceivers []*Transceiver
	dataChannels []*DataChannel
	slots        []sectionSlot
	mids         midAllocator
	pending      *pendingSnapshot

	onTrackHandler                func(*Transceiver)
	onSignalingStateChangeHandler func(SignalingState)
	onNegotiationNeededHandler    func()
}

// NewSession creates a Session from the given configuration. The zero
// Configuration is valid.
func NewSession(config Configuration) *Session {
	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	recorder := config.EventRecorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	maxMidLength := config.MaxMidLength
	if maxMidLength == 0 {
		maxMidLength = defaultMaxMidLength
	}

	session := &Session{
		log:               loggerFactory.NewLogger("negotiation"),
		recorder:          recorder,
		maxMidLength:      maxMidLength,
		cname:             util.MathRandAlpha(cnameLength),
		negotiationNeeded: &atomic.Bool{},
		signalingState:    SignalingStateStable,
		mids:              newMidAllocator(),
	}
	session.ops = newOperations(session.negotiationNeeded, session.handleNegotiationNeeded)

	return session
}

// OnTrack sets the handler called when a remote description announces
// an incoming stream. The handler runs on its own goroutine and may use
// the transceiver's accessors freely.
func (s *Session) OnTrack(handler func(*Transceiver)) {
	s.ops.Invoke(func() { s.onTrackHandler = handler })
}

// OnSignalingStateChange sets the handler called when the signaling
// state changes. The handler runs on its own goroutine.
func (s *Session) OnSignalingStateChange(handler func(SignalingState)) {
	s.ops.Invoke(func() { s.onSignalingStateChangeHandler = handler })
}

// OnNegotiationNeeded sets the handler called when local changes
// require a new negotiation round. It fires once the current operation
// chain drained, and only in stable state; changes made mid-round fire
// after the round completes.
func (s *Session) OnNegotiationNeeded(handler func()) {
	s.ops.Invoke(func() { s.onNegotiationNeededHandler = handler })
}

// SignalingState returns the current signaling state.
func (s *Session) SignalingState() SignalingState {
	var state SignalingState
	s.ops.Invoke(func() { state = s.signalingState })

	return state
}

// LocalDescription returns the pending local description if present,
// otherwise the current one.
func (s *Session) LocalDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() {
		if s.pendingLocalDescription != nil {
			desc = s.pendingLocalDescription

			return
		}
		desc = s.currentLocalDescription
	})

	return desc
}

// RemoteDescription returns the pending remote description if present,
// otherwise the current one.
func (s *Session) RemoteDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() {
		if s.pendingRemoteDescription != nil {
			desc = s.pendingRemoteDescription

			return
		}
		desc = s.currentRemoteDescription
	})

	return desc
}

// CurrentLocalDescription returns the local description of the last
// completed round, or nil.
func (s *Session) CurrentLocalDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() { desc = s.currentLocalDescription })

	return desc
}

// CurrentRemoteDescription returns the remote description of the last
// completed round, or nil.
func (s *Session) CurrentRemoteDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() { desc = s.currentRemoteDescription })

	return desc
}

// PendingLocalDescription returns the local description of the round in
// progress, or nil.
func (s *Session) PendingLocalDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() { desc = s.pendingLocalDescription })

	return desc
}

// PendingRemoteDescription returns the remote description of the round
// in progress, or nil.
func (s *Session) PendingRemoteDescription() *SessionDescription {
	var desc *SessionDescription
	s.ops.Invoke(func() { desc = s.pendingRemoteDescription })

	return desc
}

// GetTransceivers returns the session's transceivers in creation order.
func (s *Session) GetTransceivers() []*Transceiver {
	var transceivers []*Transceiver
	s.ops.Invoke(func() {
		transceivers = append(transceivers, s.transceivers...)
	})

	return transceivers
}

// AddTransceiver adds a sendrecv transceiver of the given kind, or with
// the direction and simulcast encodings of the init when one is given.
func (s *Session) AddTransceiver(kind MediaKind, init ...TransceiverInit) (*Transceiver, error) {
	if s.isClosed.Load() {
		return nil, &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}
	if kind != MediaKindAudio && kind != MediaKindVideo {
		return nil, &rtcerr.InvalidParameterError{Err: errApplicationTransceiver}
	}

	direction := DirectionSendrecv
	var rids []string
	if len(init) > 0 {
		if init[0].Direction != Direction(Unknown) {
			direction = init[0].Direction
		}
		rids = append(rids, init[0].SendEncodings...)
	}

	transceiver := &Transceiver{
		kind:      kind,
		direction: direction,
		ssrc:      SSRC(util.RandUint32()),
		rids:      rids,
	}

	s.ops.Invoke(func() {
		transceiver.session = s
		s.transceivers = append(s.transceivers, transceiver)
		s.negotiationNeeded.Store(true)
	})

	return transceiver, nil
}

// CreateDataChannel creates a data channel with the given label. The
// first open channel causes an application section to be offered; if a
// previously rejected application slot exists, it is revived under its
// original mid.
func (s *Session) CreateDataChannel(label string) (*DataChannel, error) {
	if s.isClosed.Load() {
		return nil, &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	channel := &DataChannel{id: uuid.NewString(), label: label}

	s.ops.Invoke(func() {
		channel.session = s
		s.dataChannels = append(s.dataChannels, channel)
		s.negotiationNeeded.Store(true)
	})

	return channel, nil
}

// CreateOffer produces an offer describing the session's transceivers
// and data channels. It does not change any state; the offer takes
// effect when applied with SetLocalDescription.
func (s *Session) CreateOffer() (*SessionDescription, error) {
	if s.isClosed.Load() {
		return nil, &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	var desc *SessionDescription
	var err error
	s.ops.Invoke(func() { desc, err = s.createOffer() })

	return desc, err
}

// CreateAnswer produces an answer to the pending remote offer. It does
// not change any state; the answer takes effect when applied with
// SetLocalDescription.
func (s *Session) CreateAnswer() (*SessionDescription, error) {
	if s.isClosed.Load() {
		return nil, &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	var desc *SessionDescription
	var err error
	s.ops.Invoke(func() { desc, err = s.createAnswer() })

	return desc, err
}

// SetLocalDescription validates and applies a local description.
func (s *Session) SetLocalDescription(desc *SessionDescription) error {
	if s.isClosed.Load() {
		return &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	var err error
	s.ops.Invoke(func() { err = s.setDescription(stateChangeOpSetLocal, desc) })

	return err
}

// SetRemoteDescription validates and applies a remote description. A
// rejected description leaves the session state untouched; validation
// runs in full before any section is applied.
func (s *Session) SetRemoteDescription(desc *SessionDescription) error {
	if s.isClosed.Load() {
		return &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	var err error
	s.ops.Invoke(func() { err = s.setDescription(stateChangeOpSetRemote, desc) })

	return err
}

// Rollback cancels the negotiation round in progress, restoring the
// state captured when the round began. Equivalent to applying a
// description of type rollback.
func (s *Session) Rollback() error {
	if s.isClosed.Load() {
		return &rtcerr.IllegalStateError{Err: ErrSessionClosed}
	}

	var err error
	s.ops.Invoke(func() { err = s.rollback(stateChangeOpSetLocal) })

	return err
}

// Close closes the session. Further mutation fails with
// ErrSessionClosed; read accessors keep working so handlers observing
// the closed state do not race.
func (s *Session) Close() error {
	if s.isClosed.Swap(true) {
		return nil
	}

	s.ops.Invoke(func() {
		s.updateSignalingState(SignalingStateClosed)
	})

	return nil
}

// setDescription is the single entry point for state-changing
// description application, local and remote.
func (s *Session) setDescription(op stateChangeOp, desc *SessionDescription) error { //nolint:cyclop
	if desc == nil {
		return &rtcerr.MalformedDescriptionError{Err: errNilDescription}
	}

	if desc.Type == SDPTypeRollback {
		return s.rollback(op)
	}

	next, err := checkNextSignalingState(s.signalingState, op, desc.Type)
	if err != nil {
		return err
	}

	if op == stateChangeOpSetLocal {
		if err := checkMidLengths(desc, s.maxMidLength); err != nil {
			return err
		}
		if err := checkLocalDuplicateSSRCs(desc); err != nil {
			return err
		}
	} else if err := s.validateRemoteDescription(desc); err != nil {
		return err
	}

	switch desc.Type {
	case SDPTypeOffer:
		// A re-offer within the same round keeps the original snapshot, so
		// a rollback returns to the state before the first offer.
		if s.pending == nil {
			s.pending = s.takeSnapshot()
		}
		if op == stateChangeOpSetLocal {
			s.pendingLocalDescription = desc
			s.applyLocalOffer(desc)
		} else {
			s.pendingRemoteDescription = desc
			s.applyRemoteOffer(desc)
		}
	case SDPTypePranswer:
		if op == stateChangeOpSetLocal {
			if s.pendingRemoteDescription == nil {
				return &rtcerr.IllegalStateError{Err: errPranswerWithoutPending}
			}
			s.pendingLocalDescription = desc
		} else {
			if s.pendingLocalDescription == nil {
				return &rtcerr.IllegalStateError{Err: errPranswerWithoutPending}
			}
			s.pendingRemoteDescription = desc
		}
		s.applyAnswer(desc)
	case SDPTypeAnswer:
		s.applyAnswer(desc)
		if op == stateChangeOpSetLocal {
			s.currentLocalDescription = desc
			s.currentRemoteDescription = s.pendingRemoteDescription
		} else {
			s.currentRemoteDescription = desc
			s.currentLocalDescription = s.pendingLocalDescription
		}
		s.pendingLocalDescription = nil
		s.pendingRemoteDescription = nil
		s.pending = nil
	case SDPTypeRollback:
		// handled above
	}

	s.updateSignalingState(next)

	return nil
}

// validateRemoteDescription runs every remote check before any section
// is applied. Each bundle validation pass records exactly one telemetry
// value; a payload-type collision is recorded and tolerated, an
// extension-id collision is recorded and fatal.
func (s *Session) validateRemoteDescription(desc *SessionDescription) error {
	if err := checkMidLengths(desc, s.maxMidLength); err != nil {
		return err
	}

	if len(desc.Bundles) > 0 {
		payload := checkBundledPayloadTypes(desc)
		s.recorder.RecordValidity(EventBundlePayloadTypeValidity, payload.valid)
		if !payload.valid {
			s.log.Warnf("payload type bound to different codecs within a bundle group, continuing")
		}

		extension := checkBundledExtensionIDs(desc)
		s.recorder.RecordValidity(EventBundleExtensionIDValidity, extension.valid)
		if extension.err != nil {
			return extension.err
		}
	}

	if err := checkSSRCGroups(desc); err != nil {
		return err
	}

	if desc.Type == SDPTypeAnswer || desc.Type == SDPTypePranswer {
		if err := checkSimulcastPreconditions(desc); err != nil {
			return err
		}
	}

	return nil
}

// rollback cancels the round in progress and restores the negotiated
// state captured when the round began.
func (s *Session) rollback(op stateChangeOp) error {
	next, err := checkNextSignalingState(s.signalingState, op, SDPTypeRollback)
	if err != nil {
		return err
	}

	if s.pending != nil {
		s.restoreSnapshot(s.pending)
		s.pending = nil
	}
	s.pendingLocalDescription = nil
	s.pendingRemoteDescription = nil

	s.updateSignalingState(next)

	return nil
}

func (s *Session) updateSignalingState(next SignalingState) {
	if next == s.signalingState {
		return
	}

	s.log.Debugf("signaling state changed: %s -> %s", s.signalingState, next)
	s.signalingState = next

	if handler := s.onSignalingStateChangeHandler; handler != nil {
		go handler(next)
	}
}

// handleNegotiationNeeded runs on the signaling goroutine once the
// operation chain drained with the negotiation-needed flag set.
func (s *Session) handleNegotiationNeeded() {
	if s.isClosed.Load() {
		return
	}

	// Mid-round changes fire after the round completes.
	if s.signalingState != SignalingStateStable {
		s.negotiationNeeded.Store(true)

		return
	}

	if handler := s.onNegotiationNeededHandler; handler != nil {
		go handler()
	}
}

func (s *Session) findSlot(mid string) *sectionSlot {
	for i := range s.slots {
		if s.slots[i].mid == mid {
			return &s.slots[i]
		}
	}

	return nil
}

func (s *Session) hasOpenDataChannel() bool {
	for _, channel := range s.dataChannels {
		if !channel.closed {
			return true
		}
	}

	return false
}

// applyLocalOffer commits the mids an offer proposed: slots are
// created or updated in section order and unassigned transceivers are
// bound to their sections.
func (s *Session) applyLocalOffer(desc *SessionDescription) {
	for i := range desc.Sections {
		section := &desc.Sections[i]
		s.mids.observe(section.Mid)

		slot := s.findSlot(section.Mid)
		if slot == nil {
			s.slots = append(s.slots, sectionSlot{mid: section.Mid, kind: section.Kind})
			slot = &s.slots[len(s.slots)-1]
		}
		slot.rejected = section.Rejected

		if section.Kind == MediaKindApplication || section.Rejected {
			continue
		}
		if slot.transceiver != nil && !slot.transceiver.stopped {
			continue
		}

		if transceiver := s.matchUnassignedTransceiver(section.Kind, section.Direction); transceiver != nil {
			transceiver.mid = section.Mid
			slot.transceiver = transceiver
		}
	}
}

// applyRemoteOffer mirrors the remote section order into slots, binds
// matching local transceivers and creates receive-only ones for
// sections nothing local satisfies. OnTrack fires for every newly bound
// section the remote sends on.
func (s *Session) applyRemoteOffer(desc *SessionDescription) {
	for i := range desc.Sections {
		section := &desc.Sections[i]
		s.mids.observe(section.Mid)

		slot := s.findSlot(section.Mid)
		if slot == nil {
			s.slots = append(s.slots, sectionSlot{mid: section.Mid, kind: section.Kind})
			slot = &s.slots[len(s.slots)-1]
		}
		slot.rejected = section.Rejected

		if section.Kind == MediaKindApplication || section.Rejected {
			continue
		}
		if slot.transceiver != nil && !slot.transceiver.stopped {
			continue
		}

		// The remote direction is given from its point of view; a remote
		// sendonly section is satisfied by a local transceiver that wants
		// to receive.
		transceiver := s.matchUnassignedTransceiver(section.Kind, section.Direction.Reverse())
		if transceiver == nil {
			transceiver = &Transceiver{
				session:   s,
				kind:      section.Kind,
				direction: DirectionRecvonly,
				ssrc:      SSRC(util.RandUint32()),
			}
			s.transceivers = append(s.transceivers, transceiver)
		}
		transceiver.mid = section.Mid
		slot.transceiver = transceiver

		remoteSends := section.Direction == DirectionSendrecv || section.Direction == DirectionSendonly
		if remoteSends {
			if handler := s.onTrackHandler; handler != nil {
				go handler(transceiver)
			}
		}
	}
}

// applyAnswer records the far side's verdict on each offered section.
// Rejecting the application section closes every data channel.
func (s *Session) applyAnswer(desc *SessionDescription) {
	for i := range desc.Sections {
		section := &desc.Sections[i]
		s.mids.observe(section.Mid)

		slot := s.findSlot(section.Mid)
		if slot == nil {
			continue
		}
		slot.rejected = section.Rejected

		if section.Kind == MediaKindApplication && section.Rejected {
			for _, channel := range s.dataChannels {
				channel.closed = true
			}
		}
	}
}

// matchUnassignedTransceiver returns the first transceiver without a
// mid whose kind matches and whose direction best satisfies the wanted
// one, or nil. Preference follows the wanted direction: an exact match
// first, then the directions that still cover it.
func (s *Session) matchUnassignedTransceiver(kind MediaKind, wanted Direction) *Transceiver {
	var preferences []Direction
	switch wanted {
	case DirectionSendrecv:
		preferences = []Direction{DirectionSendrecv, DirectionRecvonly, DirectionSendonly}
	case DirectionSendonly:
		preferences = []Direction{DirectionSendonly, DirectionSendrecv}
	case DirectionRecvonly:
		preferences = []Direction{DirectionRecvonly, DirectionSendrecv}
	default:
		preferences = []Direction{DirectionInactive, DirectionSendrecv}
	}

	for _, preference := range preferences {
		for _, transceiver := range s.transceivers {
			if transceiver.mid != "" || transceiver.stopped || transceiver.kind != kind {
				continue
			}
			if transceiver.direction == preference {
				return transceiver
			}
		}
	}

	return nil
}

// createOffer walks the slot table in order, recycling rejected slots
// where possible, then appends sections for everything not yet
// negotiated. Proposed mids are not committed until the offer is
// applied with SetLocalDescription.
func (s *Session) createOffer() (*SessionDescription, error) { //nolint:cyclop
	if err := s.checkActiveMids(); err != nil {
		return nil, err
	}

	desc := &SessionDescription{Type: SDPTypeOffer}
	consumed := map[*Transceiver]bool{}
	hasApplicationSlot := false

	for i := range s.slots {
		slot := &s.slots[i]

		if slot.kind == MediaKindApplication {
			hasApplicationSlot = true
			// The slot keeps its mid either way: rejected once the last
			// channel closed, revived as soon as a new channel exists.
			desc.Sections = append(desc.Sections, applicationSection(slot.mid, !s.hasOpenDataChannel()))

			continue
		}

		transceiver := slot.transceiver
		if slot.rejected || transceiver == nil || transceiver.stopped {
			// Recycle the slot for an unassigned transceiver of the same
			// kind, keeping the mid; otherwise re-offer it rejected.
			if replacement := s.nextUnassigned(slot.kind, consumed); replacement != nil {
				consumed[replacement] = true
				desc.Sections = append(desc.Sections, s.transceiverSection(slot.mid, replacement))

				continue
			}
			desc.Sections = append(desc.Sections, MediaSection{
				Mid:       slot.mid,
				Kind:      slot.kind,
				Direction: DirectionInactive,
				Rejected:  true,
			})

			continue
		}

		desc.Sections = append(desc.Sections, s.transceiverSection(slot.mid, transceiver))
	}

	nextMid := s.mids.greater + 1
	for _, transceiver := range s.transceivers {
		if transceiver.mid != "" || transceiver.stopped || consumed[transceiver] {
			continue
		}
		consumed[transceiver] = true
		desc.Sections = append(desc.Sections, s.transceiverSection(strconv.Itoa(nextMid), transceiver))
		nextMid++
	}

	if !hasApplicationSlot && s.hasOpenDataChannel() {
		desc.Sections = append(desc.Sections, applicationSection(strconv.Itoa(nextMid), false))
		nextMid++
	}

	var bundled []string
	for i := range desc.Sections {
		if !desc.Sections[i].Rejected {
			bundled = append(bundled, desc.Sections[i].Mid)
		}
	}
	if len(bundled) > 0 {
		desc.Bundles = []BundleGroup{{Mids: bundled}}
	}

	return desc, nil
}

// createAnswer mirrors the pending remote offer section by section,
// keeping mids and order, with directions reduced to what the local
// transceivers support.
func (s *Session) createAnswer() (*SessionDescription, error) {
	offer := s.pendingRemoteDescription
	if offer == nil ||
		(s.signalingState != SignalingStateHaveRemoteOffer && s.signalingState != SignalingStateHaveLocalPranswer) {
		return nil, &rtcerr.IllegalStateError{Err: ErrNoPendingDescription}
	}

	desc := &SessionDescription{Type: SDPTypeAnswer}

	for i := range offer.Sections {
		remote := &offer.Sections[i]

		if remote.Kind == MediaKindApplication {
			desc.Sections = append(desc.Sections, applicationSection(remote.Mid, remote.Rejected))

			continue
		}
		if remote.Rejected {
			desc.Sections = append(desc.Sections, MediaSection{
				Mid:       remote.Mid,
				Kind:      remote.Kind,
				Direction: DirectionInactive,
				Rejected:  true,
			})

			continue
		}

		desc.Sections = append(desc.Sections, s.answerSection(remote))
	}

	for _, bundle := range offer.Bundles {
		var mids []string
		for _, mid := range bundle.Mids {
			if section := desc.section(mid); section != nil && !section.Rejected {
				mids = append(mids, mid)
			}
		}
		if len(mids) > 0 {
			desc.Bundles = append(desc.Bundles, BundleGroup{Mids: mids})
		}
	}

	return desc, nil
}

// answerSection echoes the offered codecs and extensions with the
// direction reduced to the local transceiver's capability.
func (s *Session) answerSection(remote *MediaSection) MediaSection {
	var transceiver *Transceiver
	if slot := s.findSlot(remote.Mid); slot != nil {
		transceiver = slot.transceiver
	}

	section := MediaSection{
		Mid:              remote.Mid,
		Kind:             remote.Kind,
		Direction:        answerDirection(remote.Direction, transceiver),
		PayloadTypes:     remote.PayloadTypes,
		HeaderExtensions: remote.HeaderExtensions,
	}

	if section.Direction == DirectionSendonly || section.Direction == DirectionSendrecv {
		section.Streams = []MediaStream{{CName: s.cname, SSRCs: []SSRC{transceiver.ssrc}}}
	}

	// Offered simulcast layers are answered in the receive direction.
	if remote.Simulcast && len(remote.Rids) > 0 {
		section.Simulcast = true
		for _, rid := range remote.Rids {
			section.Rids = append(section.Rids, Rid{ID: rid.ID, Direction: rid.Direction.Reverse()})
		}
	}

	return section
}

// answerDirection intersects the offered direction with what the bound
// local transceiver wants, from the answerer's point of view.
func answerDirection(offered Direction, transceiver *Transceiver) Direction {
	if transceiver == nil || transceiver.stopped {
		return DirectionInactive
	}

	offeredSends := offered == DirectionSendrecv || offered == DirectionSendonly
	offeredReceives := offered == DirectionSendrecv || offered == DirectionRecvonly
	localSends := transceiver.direction == DirectionSendrecv || transceiver.direction == DirectionSendonly
	localReceives := transceiver.direction == DirectionSendrecv || transceiver.direction == DirectionRecvonly

	send := localSends && offeredReceives
	recv := localReceives && offeredSends

	switch {
	case send && recv:
		return DirectionSendrecv
	case send:
		return DirectionSendonly
	case recv:
		return DirectionRecvonly
	default:
		return DirectionInactive
	}
}

// checkActiveMids verifies no two active transceivers claim the same
// mid before an offer is assembled from them.
func (s *Session) checkActiveMids() error {
	seen := map[string]bool{}
	for _, transceiver := range s.transceivers {
		if transceiver.mid == "" || transceiver.stopped {
			continue
		}
		if seen[transceiver.mid] {
			return &rtcerr.IllegalStateError{Err: ErrDuplicateActiveMid}
		}
		seen[transceiver.mid] = true
	}

	return nil
}

// nextUnassigned returns the first not-yet-consumed transceiver of the
// given kind without a mid, or nil.
func (s *Session) nextUnassigned(kind MediaKind, consumed map[*Transceiver]bool) *Transceiver {
	for _, transceiver := range s.transceivers {
		if transceiver.mid != "" || transceiver.stopped || transceiver.kind != kind || consumed[transceiver] {
			continue
		}

		return transceiver
	}

	return nil
}

// transceiverSection renders one transceiver as an offered media
// section under the given mid.
func (s *Session) transceiverSection(mid string, transceiver *Transceiver) MediaSection {
	section := MediaSection{
		Mid:          mid,
		Kind:         transceiver.kind,
		Direction:    transceiver.direction,
		PayloadTypes: defaultPayloadTypes(transceiver.kind),
		HeaderExtensions: []HeaderExtension{
			{ID: 1, URI: sdp.SDESMidURI},
		},
	}

	if len(transceiver.rids) > 0 {
		section.HeaderExtensions = append(section.HeaderExtensions,
			HeaderExtension{ID: 2, URI: sdp.SDESRTPStreamIDURI})
		section.Simulcast = true
		for _, rid := range transceiver.rids {
			section.Rids = append(section.Rids, Rid{ID: rid, Direction: DirectionSendonly})
		}
	}

	if transceiver.sending() {
		section.Streams = []MediaStream{{CName: s.cname, SSRCs: []SSRC{transceiver.ssrc}}}
	}

	return section
}

func applicationSection(mid string, rejected bool) MediaSection {
	return MediaSection{
		Mid:      mid,
		Kind:     MediaKindApplication,
		Rejected: rejected,
	}
}

func defaultPayloadTypes(kind MediaKind) map[uint8]Codec {
	if kind == MediaKindAudio {
		return map[uint8]Codec{
			111: {Name: "opus", ClockRate: 48000, Channels: 2, Parameters: map[string]string{
				"minptime":     "10",
				"useinbandfec": "1",
			}},
		}
	}

	return map[uint8]Codec{
		96: {Name: "VP8", ClockRate: 90000},
	}
}
