// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/pion/negotiation/pkg/rtcerr"
)

type stateChangeOp int

const (
	stateChangeOpSetLocal stateChangeOp = iota + 1
	stateChangeOpSetRemote
)

func (op stateChangeOp) String() string {
	switch op {
	case stateChangeOpSetLocal:
		return "SetLocal"
	case stateChangeOpSetRemote:
		return "SetRemote"
	default:
		return "Unknown State Change Operation"
	}
}

// SignalingState indicates the signaling state of the offer/answer
// process.
type SignalingState int

const (
	// SignalingStateStable indicates there is no offer/answer exchange in
	// progress. This is also the initial state, in which case the local and
	// remote descriptions are nil.
	SignalingStateStable SignalingState = iota + 1

	// SignalingStateHaveLocalOffer indicates that a local description, of
	// type "offer", has been successfully applied.
	SignalingStateHaveLocalOffer

	// SignalingStateHaveRemoteOffer indicates that a remote description, of
	// type "offer", has been successfully applied.
	SignalingStateHaveRemoteOffer

	// SignalingStateHaveLocalPranswer indicates that a remote description
	// of type "offer" has been successfully applied and a local description
	// of type "pranswer" has been successfully applied.
	SignalingStateHaveLocalPranswer

	// SignalingStateHaveRemotePranswer indicates that a local description
	// of type "offer" has been successfully applied and a remote description
	// of type "pranswer" has been successfully applied.
	SignalingStateHaveRemotePranswer

	// SignalingStateClosed indicates the session has been closed.
	SignalingStateClosed
)

const (
	signalingStateStableStr             = "stable"
	signalingStateHaveLocalOfferStr     = "have-local-offer"
	signalingStateHaveRemoteOfferStr    = "have-remote-offer"
	signalingStateHaveLocalPranswerStr  = "have-local-pranswer"
	signalingStateHaveRemotePranswerStr = "have-remote-pranswer"
	signalingStateClosedStr             = "closed"
)

func newSignalingState(raw string) SignalingState {
	switch raw {
	case signalingStateStableStr:
		return SignalingStateStable
	case signalingStateHaveLocalOfferStr:
		return SignalingStateHaveLocalOffer
	case signalingStateHaveRemoteOfferStr:
		return SignalingStateHaveRemoteOffer
	case signalingStateHaveLocalPranswerStr:
		return SignalingStateHaveLocalPranswer
	case signalingStateHaveRemotePranswerStr:
		return SignalingStateHaveRemotePranswer
	case signalingStateClosedStr:
		return SignalingStateClosed
	default:
		return SignalingState(Unknown)
	}
}

func (t SignalingState) String() string {
	switch t {
	case SignalingStateStable:
		return signalingStateStableStr
	case SignalingStateHaveLocalOffer:
		return signalingStateHaveLocalOfferStr
	case SignalingStateHaveRemoteOffer:
		return signalingStateHaveRemoteOfferStr
	case SignalingStateHaveLocalPranswer:
		return signalingStateHaveLocalPranswerStr
	case SignalingStateHaveRemotePranswer:
		return signalingStateHaveRemotePranswerStr
	case SignalingStateClosed:
		return signalingStateClosedStr
	default:
		return unknownStr
	}
}

const (
	eventSetLocalOffer     = "set-local-offer"
	eventSetLocalPranswer  = "set-local-pranswer"
	eventSetLocalAnswer    = "set-local-answer"
	eventSetRemoteOffer    = "set-remote-offer"
	eventSetRemotePranswer = "set-remote-pranswer"
	eventSetRemoteAnswer   = "set-remote-answer"
	eventRollback          = "rollback"
)

// newSignalingStateMachine builds the legal transition table starting
// from the given state.
func newSignalingStateMachine(initial SignalingState) *fsm.FSM {
	return fsm.NewFSM(
		initial.String(),
		fsm.Events{
			{Name: eventSetLocalOffer, Src: []string{signalingStateStableStr, signalingStateHaveLocalOfferStr}, Dst: signalingStateHaveLocalOfferStr},
			{Name: eventSetRemoteOffer, Src: []string{signalingStateStableStr, signalingStateHaveRemoteOfferStr}, Dst: signalingStateHaveRemoteOfferStr},
			{Name: eventSetRemoteAnswer, Src: []string{signalingStateHaveLocalOfferStr, signalingStateHaveRemotePranswerStr}, Dst: signalingStateStableStr},
			{Name: eventSetLocalAnswer, Src: []string{signalingStateHaveRemoteOfferStr, signalingStateHaveLocalPranswerStr}, Dst: signalingStateStableStr},
			{Name: eventSetLocalPranswer, Src: []string{signalingStateHaveRemoteOfferStr, signalingStateHaveLocalPranswerStr}, Dst: signalingStateHaveLocalPranswerStr},
			{Name: eventSetRemotePranswer, Src: []string{signalingStateHaveLocalOfferStr, signalingStateHaveRemotePranswerStr}, Dst: signalingStateHaveRemotePranswerStr},
			{Name: eventRollback, Src: []string{
				signalingStateHaveLocalOfferStr, signalingStateHaveRemoteOfferStr,
				signalingStateHaveLocalPranswerStr, signalingStateHaveRemotePranswerStr,
			}, Dst: signalingStateStableStr},
		},
		fsm.Callbacks{},
	)
}

// checkNextSignalingState walks the transition table and returns the
// state that applying a description of the given type would produce, or
// an IllegalStateError if the transition is not legal.
func checkNextSignalingState(cur SignalingState, op stateChangeOp, sdpType SDPType) (SignalingState, error) {
	var event string
	switch {
	case sdpType == SDPTypeRollback:
		event = eventRollback
	case op == stateChangeOpSetLocal && sdpType == SDPTypeOffer:
		event = eventSetLocalOffer
	case op == stateChangeOpSetLocal && sdpType == SDPTypePranswer:
		event = eventSetLocalPranswer
	case op == stateChangeOpSetLocal && sdpType == SDPTypeAnswer:
		event = eventSetLocalAnswer
	case op == stateChangeOpSetRemote && sdpType == SDPTypeOffer:
		event = eventSetRemoteOffer
	case op == stateChangeOpSetRemote && sdpType == SDPTypePranswer:
		event = eventSetRemotePranswer
	case op == stateChangeOpSetRemote && sdpType == SDPTypeAnswer:
		event = eventSetRemoteAnswer
	default:
		return cur, &rtcerr.IllegalStateError{
			Err: fmt.Errorf("invalid proposed signaling state transition %s(%s) from %s", op, sdpType, cur), //nolint:err113
		}
	}

	// Rollback from stable is the one transition callers probe for, give
	// it a distinct detail.
	if sdpType == SDPTypeRollback && cur == SignalingStateStable {
		return cur, &rtcerr.IllegalStateError{Err: errRollbackFromStable}
	}

	machine := newSignalingStateMachine(cur)
	if err := machine.Event(context.Background(), event); err != nil {
		noTransition := fsm.NoTransitionError{}
		if errors.As(err, &noTransition) {
			// Src and Dst coincide, e.g. a re-offer while have-local-offer.
			return cur, nil
		}

		return cur, &rtcerr.IllegalStateError{
			Err: fmt.Errorf("invalid proposed signaling state transition %s(%s) from %s: %w", op, sdpType, cur, err),
		}
	}

	return newSignalingState(machine.Current()), nil
}
